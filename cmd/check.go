package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/urfave/cli/v3"
)

// CheckCommand creates the check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report whether namespaces are enabled by the current patterns",
		ArgsUsage: "NAMESPACE...",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() == 0 {
				return errors.New("at least one namespace is required")
			}
			cfg, err := loadEffectiveConfig(c)
			if err != nil {
				return err
			}
			d, err := newDebugContext(cfg)
			if err != nil {
				return err
			}
			checkNamespaces(c.Root().Writer, d, c.Args().Slice())
			return nil
		},
	}
}

// checkNamespaces prints one line per namespace with its enabled state
func checkNamespaces(w io.Writer, d *debug.Debug, namespaces []string) {
	st := newStyles(w)
	for _, ns := range namespaces {
		if d.Enabled(ns) {
			fmt.Fprintf(w, "%s %s\n", st.enabled.Render("enabled "), ns)
		} else {
			fmt.Fprintf(w, "%s %s\n", st.disabled.Render("disabled"), ns)
		}
	}
}
