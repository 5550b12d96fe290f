package debug

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Logger is a namespaced debug logger. Calls on a disabled Logger return
// before any formatting or I/O.
type Logger struct {
	d         *Debug
	id        uuid.UUID
	namespace string
	color     int
	enabled   atomic.Bool

	mu   sync.Mutex
	prev time.Time
	curr time.Time
	diff time.Duration
	log  LogFunc
}

// Log formats args and writes them if the namespace is enabled. When the
// first argument is a string it is used as the format.
func (l *Logger) Log(args ...any) {
	if !l.enabled.Load() {
		return
	}

	now := l.d.clock.Now()
	l.mu.Lock()
	l.diff = 0
	if !l.curr.IsZero() {
		l.diff = now.Sub(l.curr)
	}
	l.prev, l.curr = l.curr, now
	diff, fn := l.diff, l.log
	l.mu.Unlock()

	line := l.d.render(l, l.format(args), now, diff)
	if fn != nil {
		fn(l, line)
		return
	}
	l.d.write(l, line)
}

// Namespace returns the namespace the logger was created with.
func (l *Logger) Namespace() string { return l.namespace }

// Enabled reports the cached enabled state.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

// ID returns the identity of the logger within its context.
func (l *Logger) ID() uuid.UUID { return l.id }

// Color returns the palette entry selected for the namespace.
func (l *Logger) Color() int { return l.color }

// UseColors reports whether output of l is colored.
func (l *Logger) UseColors() bool { return l.d.useColors }

// Diff returns the time elapsed between the two most recent enabled calls.
func (l *Logger) Diff() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.diff
}

// SetLog overrides the log function for this logger only.
func (l *Logger) SetLog(fn LogFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log = fn
}

// Destroy unregisters the logger from its context. It reports false when the
// logger was already destroyed.
func (l *Logger) Destroy() bool {
	return l.d.unregister(l)
}
