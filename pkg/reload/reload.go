// Package reload re-applies namespace patterns from a config file whenever
// the file changes on disk.
package reload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/nsdebug/pkg/config"
	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/rubiojr/nsdebug/pkg/log"
)

const (
	writeSettle  = 100 * time.Millisecond
	renameSettle = 200 * time.Millisecond
)

// Watcher keeps a debug context in sync with the namespaces of a config
// file.
type Watcher struct {
	path string
	d    *debug.Debug
	log  *log.Logger

	mu       sync.Mutex
	current  *config.Config
	onReload func(*config.Config)
}

// New returns a watcher for configPath applying patterns to d.
func New(configPath string, d *debug.Debug) *Watcher {
	return &Watcher{
		path: configPath,
		d:    d,
		log:  log.ForService("reload"),
	}
}

// OnReload registers fn to run after every successful reload.
func (w *Watcher) OnReload(fn func(*config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// Current returns the last successfully applied config, or nil.
func (w *Watcher) Current() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Reload loads the config file and replaces the patterns of the debug
// context with its namespaces. On error the previous patterns stay active.
func (w *Watcher) Reload() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := config.LoadConfig(w.path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := w.d.Replace(cfg.Namespaces); err != nil {
		return fmt.Errorf("applying namespaces: %w", err)
	}
	w.current = cfg
	w.log.Debugf("applied namespaces %q (includes=%v excludes=%v)", cfg.Namespaces, w.d.Includes(), w.d.Excludes())

	if w.onReload != nil {
		w.onReload(cfg)
	}
	return nil
}

// Run watches the config file until ctx is cancelled. Reload failures are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			w.log.Warnf("failed to close config file watcher: %v", err)
		}
	}()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("watching config file %s: %w", w.path, err)
	}
	w.log.Infof("watching config file for changes: %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("config file watcher closed")
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.log.Debugf("config file changed: %s (event: %s)", event.Name, event.Op.String())

			// editors often replace the file atomically, dropping the watch
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				time.Sleep(renameSettle)
				if _, err := os.Stat(w.path); os.IsNotExist(err) {
					w.log.Warnf("config file was removed and not replaced, skipping reload")
					continue
				}
				if err := watcher.Add(w.path); err != nil {
					w.log.Warnf("failed to re-add config file to watcher: %v", err)
				}
			} else {
				time.Sleep(writeSettle)
			}

			if err := w.Reload(); err != nil {
				w.log.Errorf("failed to reload configuration: %v", err)
			} else {
				w.log.Infof("configuration reloaded")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("config file watcher closed")
			}
			w.log.Errorf("config file watcher error: %v", err)
		}
	}
}
