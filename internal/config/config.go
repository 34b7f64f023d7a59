// Package config loads compiler configuration from a YAML file, the
// format used by per-project `packetc.yaml` files.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the user-tunable midend configuration.
type Config struct {
	// MaxRounds overrides the fixpoint round limit. Zero keeps the
	// default.
	MaxRounds int `yaml:"max_rounds"`
	// DisabledPasses names optimization passes to skip. Resolution and
	// definite-assignment checking cannot be disabled.
	DisabledPasses []string `yaml:"disabled_passes"`
	// WarningsAsErrors fails compilation when any warning is reported.
	WarningsAsErrors bool `yaml:"warnings_as_errors"`
	// Jobs bounds batch-compilation parallelism. Zero means one worker
	// per CPU.
	Jobs int `yaml:"jobs"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects out-of-range settings.
func (c *Config) Validate() error {
	if c.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative, got %d", c.MaxRounds)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// Disabled reports whether the named pass is switched off.
func (c *Config) Disabled(pass string) bool {
	for _, p := range c.DisabledPasses {
		if p == pass {
			return true
		}
	}
	return false
}
