// Package config loads the gradebook YAML configuration file.
//
// A missing file is not an error: every field has a default, so the CLI
// runs with no configuration at all.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields the file leaves unset.
const (
	DefaultDatabasePath       = "data/grades.db"
	DefaultBusyTimeoutSeconds = 5
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig contains SQLite store settings.
type DatabaseConfig struct {
	Path string `yaml:"path"`

	// BusyTimeout is in seconds.
	BusyTimeout int  `yaml:"busy_timeout"`
	WAL         bool `yaml:"wal"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath,
			BusyTimeout: DefaultBusyTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads the config file at path on top of the defaults.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults.
// Unknown fields are rejected so typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills fields an explicit empty value cleared.
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = DefaultBusyTimeoutSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative, got %d", c.Database.BusyTimeout)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// GetBusyTimeout returns the busy timeout as a duration.
func (c *Config) GetBusyTimeout() time.Duration {
	return time.Duration(c.Database.BusyTimeout) * time.Second
}
