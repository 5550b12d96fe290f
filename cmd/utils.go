package cmd

import (
	"fmt"
	"os"

	"github.com/rubiojr/nsdebug/pkg/config"
	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/urfave/cli/v3"
)

// loadEffectiveConfig reads the config file and applies the environment and
// the --debug flag on top of it, in that order.
func loadEffectiveConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if c.IsSet("debug") {
		cfg.Namespaces = c.String("debug")
	}
	return cfg, nil
}

// newDebugContext builds the debug context for cfg and installs it as the
// process default so service loggers follow the same patterns.
func newDebugContext(cfg *config.Config, extra ...debug.Option) (*debug.Debug, error) {
	d, err := debug.New(append(cfg.Options(), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("creating debug context: %w", err)
	}
	debug.SetDefault(d)
	return d, nil
}
