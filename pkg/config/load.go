package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads and validates the configuration file at path. Any failure --
// missing file, malformed JSON, failed validation -- is returned as an
// error; at startup the caller treats this as fatal, since the scheduler
// cannot run without a valid mode table.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses and validates configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides checks environment variables and overrides config
// values. SPORTSBOARD_TARGET forces the render target, which is the
// testability hook for running against a console when hardware is present.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SPORTSBOARD_TARGET"); v != "" {
		cfg.Display.Target = v
	}
	if v := os.Getenv("SPORTSBOARD_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
