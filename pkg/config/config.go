package config

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rubiojr/nsdebug/pkg/debug"
)

//go:embed config.toml.sample
var configTemplate string

type Config struct {
	// Namespaces is a composite pattern string, e.g. "app:*,-app:noisy".
	Namespaces string `toml:"namespaces"`
	// Colors forces colored output on or off. Unset means detect a terminal.
	Colors   *bool        `toml:"colors,omitempty"`
	HideDate bool         `toml:"hide_date"`
	Output   string       `toml:"output"`
	Watch    *WatchConfig `toml:"watch,omitempty"`
}

// WatchConfig drives the heartbeat loggers of the watch command.
type WatchConfig struct {
	Namespaces []string `toml:"namespaces"`
	Interval   Duration `toml:"interval"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"

	defaultWatchInterval = time.Second
)

func GetDefaultConfig() *Config {
	return &Config{
		Output: OutputStderr,
		Watch:  &WatchConfig{Interval: Duration{defaultWatchInterval}},
	}
}

// LoadConfig reads configPath. A missing file yields the default config.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Output) {
	case "":
		c.Output = OutputStderr
	case OutputStderr, OutputStdout:
		c.Output = strings.ToLower(c.Output)
	default:
		return fmt.Errorf("invalid output %q: expected %s or %s", c.Output, OutputStderr, OutputStdout)
	}

	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}
	if c.Watch.Interval.Duration <= 0 {
		c.Watch.Interval = Duration{defaultWatchInterval}
	}
	return nil
}

// ApplyEnv overlays DEBUG, DEBUG_COLORS and DEBUG_HIDE_DATE on top of the
// file values. Empty variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if ns := getenv(debug.EnvNamespaces); ns != "" {
		c.Namespaces = ns
	}
	if v, ok := debug.ParseBool(getenv(debug.EnvColors)); ok {
		c.Colors = &v
	}
	if v, ok := debug.ParseBool(getenv(debug.EnvHideDate)); ok {
		c.HideDate = v
	}
}

// Writer returns the sink selected by Output.
func (c *Config) Writer() io.Writer {
	if c.Output == OutputStdout {
		return os.Stdout
	}
	return os.Stderr
}

// Options converts the config into debug context options.
func (c *Config) Options() []debug.Option {
	opts := []debug.Option{
		debug.WithWriter(c.Writer()),
		debug.WithHideDate(c.HideDate),
		debug.WithNamespaces(c.Namespaces),
	}
	if c.Colors != nil {
		opts = append(opts, debug.WithColors(*c.Colors))
	}
	return opts
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample configuration.
func SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

// GetConfigDir returns the configuration directory for nsdebug
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "nsdebug"), nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
