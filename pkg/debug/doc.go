// Package debug provides namespaced diagnostic loggers that are switched on
// and off by include/exclude patterns.
//
// A Debug context owns two ordered pattern sets and tracks every Logger
// created from it. Enable and Disable accept composite strings such as
//
//	"http, db:*, -db:pool"
//
// where '*' is a wildcard, a leading '-' routes the token to the opposite set
// and "/expr/" is a raw regular expression. Plain tokens match as literal
// substrings. A namespace is enabled when any include pattern matches it and
// no exclude pattern does.
//
// Pattern changes are broadcast to all live loggers so the enabled check on
// the logging path is a single atomic load:
//
//	d, _ := debug.New(debug.WithNamespaces("app:*"))
//	http := d.Named("app:http")
//	http.Log("listening on %s", addr)
//	d.Disable("app:http") // http is now silent
//
// The package-level functions operate on a default context initialized from
// DEBUG, DEBUG_COLORS and DEBUG_HIDE_DATE.
package debug
