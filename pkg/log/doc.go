// Package log is the operational logger used by nsdebug itself: one named
// logger per service with Infof, Warnf, Errorf and Debugf helpers, every line
// prefixed with `[name>]`.
//
// Debug output is not a level switch. Each service logger owns a debug.Logger
// on the default debug context, so Debugf is printed only when the service
// name is enabled by the DEBUG patterns:
//
//	DEBUG="reload,-watch" nsdebug watch
//
// EnableDebugFor and DisableDebugFor push exact-name patterns into the
// default context, and SetGlobalDebug forces debug output everywhere.
//
// Tests can redirect output by calling SetOutput with a bytes.Buffer.
package log
