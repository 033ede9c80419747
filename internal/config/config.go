// Package config loads goryl's optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// DefaultMaxImportDepth matches the evaluator's default import bound.
const DefaultMaxImportDepth = 64

// Config holds settings that may come from a file or from flags.
type Config struct {
	// DB is the SQLite database used to persist global bindings. Empty
	// means bindings live in memory only.
	DB             string `yaml:"db,omitempty"`
	Strict         bool   `yaml:"strict,omitempty"`
	MaxImportDepth int    `yaml:"max_import_depth,omitempty"`
	Verbose        bool   `yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{MaxImportDepth: DefaultMaxImportDepth}
}

// Load reads the config file at path and fills unset fields from
// Defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: open %s: %w", path, err)
		default:
			defer f.Close()
			cfg, err = Decode(f)
			if err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg.withDefaults()
}

// Decode parses YAML from r. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.MaxImportDepth < 0 {
		return fmt.Errorf("max_import_depth must not be negative, got %d", c.MaxImportDepth)
	}
	return nil
}

func (c Config) withDefaults() (Config, error) {
	if err := mergo.Merge(&c, Defaults()); err != nil {
		return Config{}, fmt.Errorf("config: defaults: %w", err)
	}
	return c, nil
}
