// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "gramq.toml"

// Environment variables overriding file settings.
const (
	EnvGrammar   = "GRAMQ_GRAMMAR"
	EnvJobs      = "GRAMQ_JOBS"
	EnvVerbosity = "GRAMQ_VERBOSITY"
)

// Config is the root configuration structure.
type Config struct {
	// Grammar is the path of the grammar document (.json, .yaml or .ebnf).
	Grammar string `toml:"grammar"`
	// Start overrides the root rule; required for EBNF grammars.
	Start string `toml:"start"`
	// Jobs bounds concurrent parses; 0 means one per CPU.
	Jobs int `toml:"jobs"`
	// Verbosity is passed to commonlog; 0 logs errors only.
	Verbosity int `toml:"verbosity"`
	// Format is the output format, "line" or "json".
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Format: "line"}
}

// Load reads configuration from a TOML file and applies environment
// variable overrides. An empty path loads DefaultPath if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if required {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvGrammar); v != "" {
		cfg.Grammar = v
	}
	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		cfg.Jobs = n
	}
	if v := os.Getenv(EnvVerbosity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		cfg.Verbosity = n
	}
	return nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs=%d must not be negative", c.Jobs))
	}
	switch c.Format {
	case "line", "json":
	default:
		errs = append(errs, fmt.Errorf("format=%q must be line or json", c.Format))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
