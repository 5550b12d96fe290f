package debug

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Environment variables read by OptionsFromEnv.
const (
	EnvNamespaces = "DEBUG"
	EnvColors     = "DEBUG_COLORS"
	EnvHideDate   = "DEBUG_HIDE_DATE"
)

// ParseBool interprets yes/on/true/enabled and no/off/false/disabled (case
// insensitive) and falls back to a number, where non-zero is true. ok is
// false for empty or unrecognized values.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, false
	case "yes", "on", "true", "enabled":
		return true, true
	case "no", "off", "false", "disabled":
		return false, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false, false
	}
	return n != 0, true
}

// OptionsFromEnv builds options from DEBUG, DEBUG_COLORS and DEBUG_HIDE_DATE
// as returned by getenv.
func OptionsFromEnv(getenv func(string) string) []Option {
	var opts []Option
	if ns := getenv(EnvNamespaces); ns != "" {
		opts = append(opts, WithNamespaces(ns))
	}
	if v, ok := ParseBool(getenv(EnvColors)); ok {
		opts = append(opts, WithColors(v))
	}
	if v, ok := ParseBool(getenv(EnvHideDate)); ok {
		opts = append(opts, WithHideDate(v))
	}
	return opts
}

var (
	defaultMu  sync.RWMutex
	defaultCtx *Debug

	// getenv is replaced in tests.
	getenv = os.Getenv
)

// Default returns the process-wide context, creating it from the environment
// on first use. Invalid DEBUG patterns leave it with nothing enabled.
func Default() *Debug {
	defaultMu.RLock()
	d := defaultCtx
	defaultMu.RUnlock()
	if d != nil {
		return d
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCtx == nil {
		ctx, err := New(OptionsFromEnv(getenv)...)
		if err != nil {
			ctx, _ = New()
		}
		defaultCtx = ctx
	}
	return defaultCtx
}

// SetDefault installs d as the process-wide context. Loggers created from
// the previous default keep their original context.
func SetDefault(d *Debug) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCtx = d
}

// Named creates a Logger on the default context.
func Named(namespace string) *Logger { return Default().Named(namespace) }

// Enable enables specs on the default context.
func Enable(specs ...any) error { return Default().Enable(specs...) }

// Disable disables specs on the default context.
func Disable(specs ...any) error { return Default().Disable(specs...) }

// Enabled reports whether namespace is enabled on the default context.
func Enabled(namespace string) bool { return Default().Enabled(namespace) }

// Reset clears the patterns of the default context.
func Reset() { Default().Reset() }
