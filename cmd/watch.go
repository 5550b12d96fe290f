package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/rubiojr/nsdebug/pkg/log"
	"github.com/rubiojr/nsdebug/pkg/reload"
	"github.com/urfave/cli/v3"
)

// WatchCommand creates the watch command
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Emit heartbeats from namespaced loggers and reload patterns on config changes",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "namespace",
				Usage: "Namespace to create a logger for. Can be used multiple times",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between heartbeats",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadEffectiveConfig(c)
			if err != nil {
				return err
			}
			namespaces := cfg.Watch.Namespaces
			if c.IsSet("namespace") {
				namespaces = c.StringSlice("namespace")
			}
			if len(namespaces) == 0 {
				return errors.New("no namespaces to watch: use --namespace or [watch] namespaces")
			}
			interval := cfg.Watch.Interval.Duration
			if c.IsSet("interval") {
				interval = c.Duration("interval")
			}
			if interval <= 0 {
				return fmt.Errorf("invalid interval %v", interval)
			}

			d, err := newDebugContext(cfg)
			if err != nil {
				return err
			}
			return watch(ctx, c.String("config"), d, namespaces, interval)
		},
	}
}

// watch runs the heartbeat loop until SIGINT or SIGTERM
func watch(ctx context.Context, configPath string, d *debug.Debug, namespaces []string, interval time.Duration) error {
	logger := log.ForService("watch")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := reload.New(configPath, d)
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Warnf("config reload disabled: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	ticker := clock.New().Ticker(interval)
	defer ticker.Stop()

	loggers := make([]*debug.Logger, len(namespaces))
	for i, ns := range namespaces {
		loggers[i] = d.Named(ns)
	}
	defer func() {
		for _, l := range loggers {
			l.Destroy()
		}
	}()

	logger.Infof("watching %d namespaces every %v. Send SIGHUP or edit %s to reload patterns.", len(namespaces), interval, configPath)
	return heartbeatLoop(ctx, ticker.C, sigCh, w.Reload, loggers)
}

// heartbeatLoop logs from every logger on each tick. SIGHUP triggers a
// reload, SIGINT and SIGTERM stop the loop.
func heartbeatLoop(ctx context.Context, ticks <-chan time.Time, sigCh <-chan os.Signal, reloadFn func() error, loggers []*debug.Logger) error {
	logger := log.ForService("watch")
	beat := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("received SIGHUP, reloading configuration")
				if err := reloadFn(); err != nil {
					logger.Errorf("failed to reload configuration: %v", err)
				}
			default:
				logger.Infof("shutting down")
				return nil
			}
		case <-ticks:
			beat++
			for _, l := range loggers {
				l.Log("heartbeat %d", beat)
			}
			logger.Debugf("heartbeat %d sent to %d loggers", beat, len(loggers))
		}
	}
}
