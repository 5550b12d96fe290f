package debug

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Formatter renders the argument consumed by a single-letter directive such
// as %j. It receives the logger being invoked.
type Formatter func(l *Logger, v any) string

var directivePattern = regexp.MustCompile(`%([a-zA-Z%])`)

// fmtVerbs are the directives handed to fmt when no Formatter is registered.
const fmtVerbs = "vtbcdqxXUeEfFgGsp"

func defaultFormatters() map[rune]Formatter {
	return map[rune]Formatter{
		'o': func(_ *Logger, v any) string {
			return strings.Join(strings.Fields(fmt.Sprintf("%v", v)), " ")
		},
		'O': func(_ *Logger, v any) string {
			return fmt.Sprintf("%+v", v)
		},
		'j': func(_ *Logger, v any) string {
			b, err := json.Marshal(v)
			if err != nil {
				return "[UnexpectedJSONParseError]: " + err.Error()
			}
			return string(b)
		},
	}
}

// SetFormatter registers fn for the directive %c. A nil fn removes it.
func (d *Debug) SetFormatter(c rune, fn Formatter) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if fn == nil {
		delete(d.formatters, c)
		return
	}
	d.formatters[c] = fn
}

func (d *Debug) formatter(c rune) Formatter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.formatters[c]
}

func coerce(v any) any {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

// format turns an argument list into a message. A string first argument is
// the format; its directives consume the following arguments in order and
// any left over are appended separated by spaces.
func (l *Logger) format(args []any) string {
	if len(args) == 0 {
		return ""
	}
	first := coerce(args[0])
	format, ok := first.(string)
	if ok {
		args = args[1:]
	} else {
		format = "%O"
		args = append([]any{first}, args[1:]...)
	}

	next := 0
	msg := directivePattern.ReplaceAllStringFunc(format, func(match string) string {
		if match == "%%" {
			return "%"
		}
		c := rune(match[1])
		fn := l.d.formatter(c)
		if fn == nil && !strings.ContainsRune(fmtVerbs, c) {
			return match
		}
		if next >= len(args) {
			return match
		}
		v := args[next]
		next++
		if fn != nil {
			return fn(l, v)
		}
		return fmt.Sprintf(match, v)
	})

	if next >= len(args) {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for _, v := range args[next:] {
		b.WriteByte(' ')
		fmt.Fprint(&b, coerce(v))
	}
	return b.String()
}
