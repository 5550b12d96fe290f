package debug

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// LogFunc receives a fully rendered line for l. It replaces the default sink
// when set on a Debug context or on a single Logger.
type LogFunc func(l *Logger, line string)

// Debug holds the include/exclude namespace patterns and every live Logger
// created from it. Pattern changes are rebroadcast to all loggers.
type Debug struct {
	mu         sync.RWMutex
	includes   patternSet
	excludes   patternSet
	instances  []*Logger
	formatters map[rune]Formatter
	log        LogFunc

	out       io.Writer
	clock     clock.Clock
	renderer  *lipgloss.Renderer
	useColors bool
	hideDate  bool
	palette   []int
}

// Option configures a Debug context.
type Option func(*options)

type options struct {
	out        io.Writer
	clock      clock.Clock
	colors     *bool
	profile    *termenv.Profile
	hideDate   bool
	namespaces string
	log        LogFunc
}

// WithWriter sets the default sink. Defaults to os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithClock sets the time source used for diffs and dates.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithColors forces colored output on or off. Without it colors are used
// when the writer is a terminal.
func WithColors(enabled bool) Option {
	return func(o *options) { o.colors = &enabled }
}

// WithColorProfile overrides the detected terminal color profile.
func WithColorProfile(p termenv.Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithHideDate omits the date prefix from uncolored output.
func WithHideDate(hide bool) Option {
	return func(o *options) { o.hideDate = hide }
}

// WithNamespaces enables the given composite namespace string at creation.
func WithNamespaces(spec string) Option {
	return func(o *options) { o.namespaces = spec }
}

// WithLog sets the context-wide log function.
func WithLog(fn LogFunc) Option {
	return func(o *options) { o.log = fn }
}

// New creates a Debug context. Invalid patterns passed through
// WithNamespaces are reported as an error.
func New(opts ...Option) (*Debug, error) {
	o := options{out: os.Stderr, clock: clock.New()}
	for _, fn := range opts {
		fn(&o)
	}

	d := &Debug{
		formatters: defaultFormatters(),
		log:        o.log,
		out:        o.out,
		clock:      o.clock,
		hideDate:   o.hideDate,
	}

	if o.colors != nil {
		d.useColors = *o.colors
	} else {
		d.useColors = isTerminal(o.out)
	}

	d.renderer = lipgloss.NewRenderer(o.out)
	switch {
	case o.profile != nil:
		d.renderer.SetColorProfile(*o.profile)
	case d.useColors && d.renderer.ColorProfile() == termenv.Ascii:
		// colors forced on a writer that is not a terminal
		d.renderer.SetColorProfile(termenv.ANSI)
	}
	d.palette = basicColors
	if d.renderer.ColorProfile() <= termenv.ANSI256 {
		d.palette = extendedColors
	}

	if o.namespaces != "" {
		if err := d.Enable(o.namespaces); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Named creates and registers a Logger for namespace. Its enabled state is
// computed from the patterns as they stand now.
func (d *Debug) Named(namespace string) *Logger {
	l := &Logger{
		d:         d,
		id:        uuid.New(),
		namespace: namespace,
		color:     selectColor(namespace, d.palette),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	l.enabled.Store(d.enabled(namespace))
	d.instances = append(d.instances, l)
	return l
}

// Enable adds patterns to the include set and removes their equivalents from
// the exclude set. With no arguments every namespace is enabled.
//
// Each spec may be a bool, a composite string ("a, b:*, -c"), a Pattern, a
// *regexp.Regexp or a slice of those. Tokens prefixed with '-' and the value
// false are routed to the exclude set instead.
func (d *Debug) Enable(specs ...any) error {
	return d.update(false, specs)
}

// Disable is the mirror of Enable: patterns go to the exclude set and are
// removed from the include set. With no arguments every namespace is
// disabled. Booleans keep their meaning, so Disable(true) enables
// everything.
func (d *Debug) Disable(specs ...any) error {
	return d.update(true, specs)
}

func (d *Debug) update(exclude bool, specs []any) error {
	if len(specs) == 0 {
		specs = []any{nil}
	}
	dirs, err := directives(specs, exclude)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dir := range dirs {
		apply(&d.includes, &d.excludes, dir)
	}
	d.refresh()
	return nil
}

// Replace atomically clears both pattern sets and enables specs. Calling it
// with no specs is equivalent to Reset.
func (d *Debug) Replace(specs ...any) error {
	dirs, err := directives(specs, false)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.includes, d.excludes = nil, nil
	for _, dir := range dirs {
		apply(&d.includes, &d.excludes, dir)
	}
	d.refresh()
	return nil
}

// Reset clears both pattern sets. Every namespace is disabled afterwards.
func (d *Debug) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.includes, d.excludes = nil, nil
	d.refresh()
}

// Enabled reports whether namespace matches an include pattern and no
// exclude pattern.
func (d *Debug) Enabled(namespace string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled(namespace)
}

func (d *Debug) enabled(namespace string) bool {
	if !d.includes.match(namespace) {
		return false
	}
	return !d.excludes.match(namespace)
}

// refresh recomputes the cached flag of every instance. d.mu must be held.
func (d *Debug) refresh() {
	for _, l := range d.instances {
		l.enabled.Store(d.enabled(l.namespace))
	}
}

// Includes returns the string forms of the include set in insertion order.
func (d *Debug) Includes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.includes.strings()
}

// Excludes returns the string forms of the exclude set in insertion order.
func (d *Debug) Excludes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.excludes.strings()
}

// Instance is a point-in-time view of a registered Logger.
type Instance struct {
	ID        uuid.UUID
	Namespace string
	Enabled   bool
}

// Instances returns a snapshot of the registered loggers in creation order.
func (d *Debug) Instances() []Instance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Instance, len(d.instances))
	for i, l := range d.instances {
		out[i] = Instance{ID: l.id, Namespace: l.namespace, Enabled: l.enabled.Load()}
	}
	return out
}

// SetLog replaces the context-wide log function. A nil fn restores the
// default sink.
func (d *Debug) SetLog(fn LogFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = fn
}

// UseColors reports whether loggers of this context render colors.
func (d *Debug) UseColors() bool { return d.useColors }

func (d *Debug) unregister(l *Logger) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, inst := range d.instances {
		if inst.id == l.id {
			d.instances = append(d.instances[:i], d.instances[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Debug) write(l *Logger, line string) {
	d.mu.RLock()
	fn := d.log
	d.mu.RUnlock()
	if fn != nil {
		fn(l, line)
		return
	}
	fmt.Fprintln(d.out, line)
}

// directives normalizes every spec before any set is touched so that a bad
// pattern leaves the registry unchanged.
func directives(specs []any, exclude bool) ([]directive, error) {
	var out []directive
	for _, spec := range specs {
		switch v := spec.(type) {
		case bool:
			// booleans are absolute: true enables everything, false disables it
			ps, _ := Normalize(v)
			out = append(out, directive{pattern: ps[0], exclude: !v})
		case string:
			for _, tok := range ParseSpec(v) {
				ps, err := Normalize(tok.Value)
				if err != nil {
					return nil, err
				}
				out = append(out, directive{pattern: ps[0], exclude: exclude || tok.Negated})
			}
		case []string:
			sub, err := directives(toAny(v), exclude)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		case []any:
			sub, err := directives(v, exclude)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		default:
			ps, err := Normalize(v)
			if err != nil {
				return nil, err
			}
			for _, p := range ps {
				out = append(out, directive{pattern: p, exclude: exclude})
			}
		}
	}
	return out, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
