// Package config holds the settings of the quill command line tool.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the complete driver configuration
type Config struct {
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Watch  WatchConfig  `toml:"watch"`
}

// OutputConfig controls how trees and diagnostics are printed
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// WatchConfig holds settings for `quill watch`
type WatchConfig struct {
	// Debounce is how long to wait after a write before parsing again
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var (
	formats = []string{"pretty", "yaml", "sexpr"}
	levels  = []string{"debug", "info", "warn", "error"}
)

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "pretty",
			Color:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// Load reads a TOML file over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	path = os.ExpandEnv(path)

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !contains(formats, c.Output.Format) {
		return errors.Errorf("output.format must be one of %s, got %q", strings.Join(formats, ", "), c.Output.Format)
	}

	if !contains(levels, c.Log.Level) {
		return errors.Errorf("log.level must be one of %s, got %q", strings.Join(levels, ", "), c.Log.Level)
	}

	if c.Watch.Debounce.Duration < 0 {
		return errors.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
