package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/nsdebug/pkg/config"
	"github.com/urfave/cli/v3"
)

// InitCommand creates the init command
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a sample configuration file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return initConfig(c.Root().Writer, c.String("config"), c.Bool("force"))
		},
	}
}

// initConfig writes the sample configuration unless one already exists
func initConfig(w io.Writer, configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
	}
	if err := config.SaveTemplateConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(w, "Configuration initialized at %s\n", configPath)
	return nil
}
