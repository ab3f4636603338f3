// Package config provides configuration loading for the occurs CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultOccursLimit bounds finite occurrence values unless configured otherwise.
const DefaultOccursLimit = 1 << 20

// Config represents the complete CLI configuration
type Config struct {
	Output OutputConfig `yaml:"output" json:"output"`
	Log    LogConfig    `yaml:"log" json:"log"`
	Occurs OccursConfig `yaml:"occurs" json:"occurs"`
}

// OutputConfig configures result rendering
type OutputConfig struct {
	// Format is one of text, json, yaml (default: text)
	Format string `yaml:"format" json:"format"`
}

// LogConfig configures diagnostic logging on stderr
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, error (default: warn)
	Level string `yaml:"level" json:"level"`
}

// OccursConfig configures occurrence checks
type OccursConfig struct {
	// Limit rejects finite occurrence values above it; 0 disables the check
	Limit uint64 `yaml:"limit" json:"limit"`
	// Strict turns occurrence diagnostics into a failing exit status
	Strict bool `yaml:"strict" json:"strict"`

	// limitSet and strictSet record keys present in a decoded file, so an
	// explicit 0 or false still overrides an earlier layer.
	limitSet  bool
	strictSet bool
}

type rawOccursConfig struct {
	Limit  *uint64 `yaml:"limit" json:"limit"`
	Strict *bool   `yaml:"strict" json:"strict"`
}

// UnmarshalYAML implements yaml.Unmarshaler for OccursConfig.
func (o *OccursConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawOccursConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	o.apply(raw)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for OccursConfig.
func (o *OccursConfig) UnmarshalJSON(data []byte) error {
	var raw rawOccursConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.apply(raw)
	return nil
}

func (o *OccursConfig) apply(raw rawOccursConfig) {
	if raw.Limit != nil {
		o.Limit = *raw.Limit
		o.limitSet = true
	}
	if raw.Strict != nil {
		o.Strict = *raw.Strict
		o.strictSet = true
	}
}

// DefaultConfig returns a Config with defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: FormatText},
		Log:    LogConfig{Level: "warn"},
		Occurs: OccursConfig{Limit: DefaultOccursLimit},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml: got %q", c.Output.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}

// LoadFromFile loads configuration from a YAML or JSONC file, chosen by extension.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge merges another config into this one. Other takes precedence for
// non-zero values and for occurs keys its file set explicitly.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Occurs.limitSet || other.Occurs.Limit != 0 {
		c.Occurs.Limit = other.Occurs.Limit
	}
	if other.Occurs.strictSet || other.Occurs.Strict {
		c.Occurs.Strict = other.Occurs.Strict
	}
}
