package reload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rubiojr/nsdebug/pkg/config"
	"github.com/rubiojr/nsdebug/pkg/debug"
	"github.com/rubiojr/nsdebug/pkg/log"
)

func setup(t *testing.T, content string) (string, *debug.Debug) {
	t.Helper()
	log.SetOutput(&bytes.Buffer{})
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	d, err := debug.New(debug.WithWriter(&bytes.Buffer{}), debug.WithColors(false))
	if err != nil {
		t.Fatalf("debug.New: %v", err)
	}
	return path, d
}

func TestReloadAppliesNamespaces(t *testing.T) {
	path, d := setup(t, `namespaces = "app:*,-app:noisy"`)
	noisy := d.Named("app:noisy")
	http := d.Named("app:http")

	w := New(path, d)
	var seen *config.Config
	w.OnReload(func(cfg *config.Config) { seen = cfg })

	if err := w.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !http.Enabled() || noisy.Enabled() {
		t.Fatalf("unexpected state http=%v noisy=%v", http.Enabled(), noisy.Enabled())
	}
	if seen == nil || seen != w.Current() {
		t.Fatal("OnReload should receive the applied config")
	}
	if got := d.Excludes(); !reflect.DeepEqual(got, []string{"app:noisy"}) {
		t.Fatalf("excludes = %q", got)
	}
}

func TestReloadReplacesPreviousPatterns(t *testing.T) {
	path, d := setup(t, `namespaces = "a"`)
	w := New(path, d)
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if err := os.WriteFile(path, []byte(`namespaces = "b"`), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if d.Enabled("a") || !d.Enabled("b") {
		t.Fatalf("includes = %q, want only b", d.Includes())
	}
}

func TestReloadKeepsPatternsOnError(t *testing.T) {
	path, d := setup(t, `namespaces = "a"`)
	w := New(path, d)
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if err := os.WriteFile(path, []byte(`namespaces = "/(/"`), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	if err := w.Reload(); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
	if !d.Enabled("a") {
		t.Fatal("previous patterns should remain after a failed reload")
	}
	if w.Current().Namespaces != "a" {
		t.Fatalf("current config = %+v", w.Current())
	}
}

func TestRunReloadsOnWrite(t *testing.T) {
	path, d := setup(t, `namespaces = "before"`)
	l := d.Named("after")

	w := New(path, d)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the path
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`namespaces = "after"`), 0644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !l.Enabled() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for reload")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunMissingFile(t *testing.T) {
	_, d := setup(t, "")
	w := New(filepath.Join(t.TempDir(), "absent.toml"), d)
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error watching a missing file")
	}
}
