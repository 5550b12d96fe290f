package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PatternsCommand creates the patterns command
func PatternsCommand() *cli.Command {
	return &cli.Command{
		Name:  "patterns",
		Usage: "Show the include and exclude pattern sets",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadEffectiveConfig(c)
			if err != nil {
				return err
			}
			d, err := newDebugContext(cfg)
			if err != nil {
				return err
			}
			showPatterns(c.Root().Writer, d)
			return nil
		},
	}
}

// showPatterns prints both pattern sets in insertion order
func showPatterns(w io.Writer, d *debug.Debug) {
	st := newStyles(w)
	title := cases.Title(language.English)

	sets := []struct {
		name     string
		patterns []string
	}{
		{"includes", d.Includes()},
		{"excludes", d.Excludes()},
	}
	for i, set := range sets {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, st.header.Render(fmt.Sprintf("%s (%d)", title.String(set.name), len(set.patterns))))
		if len(set.patterns) == 0 {
			fmt.Fprintln(w, st.meta.Render("  none"))
			continue
		}
		for j, p := range set.patterns {
			fmt.Fprintf(w, "  %d. /%s/\n", j+1, p)
		}
	}
}
