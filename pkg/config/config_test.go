package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Namespaces != "" || cfg.Output != OutputStderr {
		t.Fatalf("unexpected default config: %+v", cfg)
	}
	if cfg.Watch.Interval.Duration != time.Second {
		t.Fatalf("default interval = %v", cfg.Watch.Interval)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
namespaces = "app:*,-app:noisy"
colors = false
hide_date = true
output = "STDOUT"

[watch]
namespaces = ["app:http", "app:db"]
interval = "250ms"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Namespaces != "app:*,-app:noisy" {
		t.Errorf("Namespaces = %q", cfg.Namespaces)
	}
	if cfg.Colors == nil || *cfg.Colors {
		t.Errorf("Colors = %v, want false", cfg.Colors)
	}
	if !cfg.HideDate {
		t.Error("HideDate should be true")
	}
	if cfg.Output != OutputStdout || cfg.Writer() != os.Stdout {
		t.Errorf("Output = %q", cfg.Output)
	}
	if len(cfg.Watch.Namespaces) != 2 || cfg.Watch.Interval.Duration != 250*time.Millisecond {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"bad toml":     `namespaces = `,
		"bad output":   `output = "file"`,
		"bad interval": "[watch]\ninterval = \"soon\"",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Namespaces = "from:file"
	env := map[string]string{
		"DEBUG":           "from:env,-from:env:noisy",
		"DEBUG_COLORS":    "on",
		"DEBUG_HIDE_DATE": "1",
	}
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Namespaces != "from:env,-from:env:noisy" {
		t.Errorf("Namespaces = %q", cfg.Namespaces)
	}
	if cfg.Colors == nil || !*cfg.Colors {
		t.Error("Colors should be forced on")
	}
	if !cfg.HideDate {
		t.Error("HideDate should be true")
	}

	untouched := GetDefaultConfig()
	untouched.Namespaces = "keep"
	untouched.ApplyEnv(func(string) string { return "" })
	if untouched.Namespaces != "keep" || untouched.Colors != nil {
		t.Errorf("empty environment changed config: %+v", untouched)
	}
}

func TestOptions(t *testing.T) {
	off := false
	cfg := GetDefaultConfig()
	cfg.Namespaces = "a"
	cfg.Colors = &off
	if got := len(cfg.Options()); got != 4 {
		t.Fatalf("len(Options) = %d, want 4", got)
	}
	cfg.Colors = nil
	if got := len(cfg.Options()); got != 3 {
		t.Fatalf("len(Options) = %d, want 3", got)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := GetDefaultConfig()
	cfg.Namespaces = "svc:*"
	cfg.Watch.Namespaces = []string{"svc:a"}
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Namespaces != "svc:*" || loaded.Watch.Namespaces[0] != "svc:a" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTemplateConfig(path); err != nil {
		t.Fatalf("SaveTemplateConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading template: %v", err)
	}
	if !strings.Contains(string(data), "namespaces") {
		t.Fatal("template missing namespaces key")
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if cfg.Namespaces != "app:*,-app:noisy" {
		t.Fatalf("template namespaces = %q", cfg.Namespaces)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("GetDefaultConfigPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "nsdebug", "config.toml") {
		t.Fatalf("path = %q", path)
	}
}
