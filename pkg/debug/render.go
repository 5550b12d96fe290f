package debug

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// render decorates msg for l. Colored output prefixes every line with the
// bold namespace and appends the humanized diff; plain output starts with a
// UTC date unless hidden.
func (d *Debug) render(l *Logger, msg string, now time.Time, diff time.Duration) string {
	if !d.useColors {
		if d.hideDate {
			return l.namespace + " " + msg
		}
		return now.UTC().Format(dateLayout) + " " + l.namespace + " " + msg
	}

	color := lipgloss.Color(strconv.Itoa(l.color))
	ns := d.renderer.NewStyle().Foreground(color).Bold(true).Render(l.namespace)
	prefix := "  " + ns + " "

	lines := strings.Split(msg, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	suffix := d.renderer.NewStyle().Foreground(color).Render("+" + Humanize(diff))
	return strings.Join(lines, "\n") + " " + suffix
}
