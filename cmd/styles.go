package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles are bound to a renderer for the output writer, so colors are
// dropped automatically when w is not a terminal.
type styles struct {
	header   lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
	meta     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		enabled: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")),
		disabled: r.NewStyle().
			Foreground(lipgloss.Color("160")),
		meta: r.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}
