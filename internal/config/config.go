/*
PURPOSE:
  Defines the configuration structure and loading logic for Toy Robot.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Table extents are fixed at process start.
  - Batch files use '|' as the record delimiter.
  - Reports are printed as "Output : <report>".

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Delimiter must be a single byte so the batch scanner can split on it.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults silently.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults reproduce the reference 5x5 table.

USAGE:
  cfg, err := config.Load("toyrobot.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig() and Validate().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TableConfig is the inclusive maximum coordinate on each axis.
type TableConfig struct {
	MaxX uint64 `yaml:"max_x"`
	MaxY uint64 `yaml:"max_y"`
}

// Config represents the full configuration for Toy Robot.
type Config struct {
	Table           TableConfig `yaml:"table"`
	OutputPrefix    string      `yaml:"output_prefix"`
	RecordDelimiter string      `yaml:"record_delimiter"`
	// EchoRecords prints each batch record before it is processed.
	EchoRecords bool   `yaml:"echo_records"`
	Color       bool   `yaml:"color"`
	LogLevel    string `yaml:"log_level"`
	// MetricsFile, when set, receives command counters in Prometheus text format.
	MetricsFile string `yaml:"metrics_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Table:           TableConfig{MaxX: 4, MaxY: 4},
		OutputPrefix:    "Output : ",
		RecordDelimiter: "|",
		EchoRecords:     true,
		Color:           false,
		LogLevel:        "info",
	}
}

// DefaultFiles are searched in order when no path is given.
var DefaultFiles = []string{"toyrobot.yaml", "toyrobot.yml", "robot.yaml"}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks fields that cannot be expressed by the YAML types alone.
func (c *Config) Validate() error {
	if len(c.RecordDelimiter) != 1 {
		return fmt.Errorf("record_delimiter must be a single byte, got %q", c.RecordDelimiter)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level converts LogLevel into a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return lvl, nil
}
