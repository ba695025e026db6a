// Package config loads settings for the arith command.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/arith"
)

// Config holds the arith command settings.
type Config struct {
	// Tolerance is the magnitude below which divisors are treated as zero.
	Tolerance float64 `yaml:"tolerance"`
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Lines makes each input line a separate expression.
	Lines bool `yaml:"lines"`
	// Echo prints each parsed expression before its result.
	Echo bool `yaml:"echo"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log-level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Tolerance: arith.DefaultTolerance,
		Format:    "%g",
		LogLevel:  "warn",
	}
}

// Load reads a YAML config file over the defaults. An empty path gives the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Decode(b); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode applies YAML settings to cfg and validates the result. Keys absent
// from the document keep their current values.
func (cfg *Config) Decode(b []byte) error {
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config YAML: %w", err)
	}
	return cfg.Validate()
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Validate checks that the settings are usable.
func (cfg Config) Validate() error {
	if math.IsNaN(cfg.Tolerance) || cfg.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %g must be non-negative", ErrInvalid, cfg.Tolerance)
	}
	if strings.Count(cfg.Format, "%") != 1 {
		return fmt.Errorf("%w: format %q must contain exactly one verb", ErrInvalid, cfg.Format)
	}
	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level.
func (cfg Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(cfg.LogLevel)
}

// ContextOptions returns the evaluation options the settings describe.
func (cfg Config) ContextOptions() []arith.ContextOption {
	return []arith.ContextOption{arith.Tolerance(cfg.Tolerance)}
}
