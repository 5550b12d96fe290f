package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/rubiojr/nsdebug/pkg/debug"
)

// Logger is a named operational logger. Its Debugf output is gated by the
// namespace patterns of the default debug context.
type Logger struct {
	name     string
	std      *log.Logger
	dbg      *debug.Logger
	warnOnce sync.Once
}

// writerHolder keeps atomic.Value storing a single concrete type regardless
// of the writer implementation.
type writerHolder struct {
	w io.Writer
}

var (
	globalDebug atomic.Bool

	// loggers caches created named loggers.
	loggers sync.Map // map[string]*Logger

	outputWriter atomic.Value // writerHolder
)

func init() {
	outputWriter.Store(writerHolder{w: os.Stderr})
}

// ForService returns (and memoizes) a named logger for the given service.
// The name doubles as its debug namespace.
func ForService(name string) *Logger {
	if name == "" {
		name = "unknown"
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger)
	}
	current := outputWriter.Load().(writerHolder).w
	std := log.New(current, "", log.LstdFlags|log.Lmicroseconds)
	logger := &Logger{name: name, std: std, dbg: debug.Named(name)}
	actual, loaded := loggers.LoadOrStore(name, logger)
	if loaded {
		logger.dbg.Destroy()
	}
	return actual.(*Logger)
}

// SetGlobalDebug forces debug output for every service regardless of
// namespace patterns.
func SetGlobalDebug(enabled bool) {
	globalDebug.Store(enabled)
}

// GlobalDebug returns whether global debug logging is forced on.
func GlobalDebug() bool {
	return globalDebug.Load()
}

// exact builds a pattern matching only name.
func exact(name string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(name) + "$")
}

// EnableDebugFor enables debug output for exactly the named service.
func EnableDebugFor(name string) {
	if name == "" {
		return
	}
	_ = debug.Enable(exact(name))
}

// DisableDebugFor excludes the named service from debug output, overriding
// any wider include pattern.
func DisableDebugFor(name string) {
	if name == "" {
		return
	}
	_ = debug.Disable(exact(name))
}

// DebugEnabledFor returns whether debug is enabled for the given service,
// either globally or through the namespace patterns.
func DebugEnabledFor(name string) bool {
	if globalDebug.Load() {
		return true
	}
	if l, ok := loggers.Load(name); ok {
		return l.(*Logger).dbg.Enabled()
	}
	return debug.Enabled(name)
}

// SetOutput sets the output writer for all loggers, existing ones included.
func SetOutput(w io.Writer) {
	if w == nil {
		return
	}
	outputWriter.Store(writerHolder{w: w})
	loggers.Range(func(_, v any) bool {
		l := v.(*Logger)
		l.std.SetOutput(w)
		return true
	})
}

func (l *Logger) prefix() string {
	return "[" + l.name + ">]"
}

func (l *Logger) logInternal(level string, msg string) {
	if level != "" {
		level = level + " "
	}
	l.std.Println(level + l.prefix() + " " + msg)
}

// Infof logs an informational message with fmt.Sprintf semantics.
func (l *Logger) Infof(format string, args ...any) {
	l.logInternal(LevelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.warnOnce.Do(func() {
		l.logInternal(LevelWarn, "warnings active for this logger")
	})
	l.logInternal(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs an error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.logInternal(LevelError, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message if the service namespace is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !globalDebug.Load() && !l.dbg.Enabled() {
		return
	}
	l.logInternal(LevelDebug, fmt.Sprintf(format, args...))
}

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelDebug = "DEBUG"
)
