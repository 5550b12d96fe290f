package main

import (
	"context"
	"log"
	"os"

	"github.com/rubiojr/nsdebug/cmd"
	"github.com/rubiojr/nsdebug/pkg/config"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "nsdebug",
		Usage: "Inspect and live-reload namespace debug patterns",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "debug",
				Usage: "Namespace patterns, overriding DEBUG and the config file (e.g. \"app:*,-app:noisy\")",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.CheckCommand(),
			cmd.PatternsCommand(),
			cmd.WatchCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		log.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
