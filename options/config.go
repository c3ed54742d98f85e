// Package options loads reader and writer configuration from YAML. All
// settings are pure session setup: they are applied before the first row is
// processed and never change afterwards.
package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects the codec and header-matching knobs of a session.
type Config struct {
	// Delimiter is the field delimiter, a single ASCII character. Empty
	// selects ','.
	Delimiter string `yaml:"delimiter"`
	// Quote is the quote character, a single ASCII character. Empty selects
	// '"'.
	Quote string `yaml:"quote"`
	// CRLF terminates written records with \r\n.
	CRLF bool `yaml:"crlf"`
	// AlwaysQuote forces quoting of every written field.
	AlwaysQuote bool `yaml:"always_quote"`

	// Reorder allows matching columns to fields out of order.
	Reorder bool `yaml:"reorder"`
	// IgnoreUnusedColumns allows headers no field name matches.
	IgnoreUnusedColumns bool `yaml:"ignore_unused_columns"`
	// IgnoreASCIICase matches headers case-insensitively.
	IgnoreASCIICase bool `yaml:"ignore_ascii_case"`
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Delimiter) > 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if len(c.Quote) > 1 {
		return fmt.Errorf("quote must be a single character, got %q", c.Quote)
	}
	return nil
}

// DelimiterByte returns the configured delimiter, defaulting to ','.
func (c *Config) DelimiterByte() byte {
	if c.Delimiter == "" {
		return ','
	}
	return c.Delimiter[0]
}

// QuoteByte returns the configured quote character, defaulting to '"'.
func (c *Config) QuoteByte() byte {
	if c.Quote == "" {
		return '"'
	}
	return c.Quote[0]
}
