package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	// Listen is the address the HTTP listener binds to.
	Listen string `yaml:"listen"`

	// LogLevel is the most verbose level that still gets logged: error,
	// warn, info, debug or trace.
	LogLevel string `yaml:"log_level"`

	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds the optional PostgreSQL connection settings.
// Snapshot routes are active only when URL is set.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// LoadConfig reads configuration from a YAML file. A missing file is not
// an error; the server then runs on defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults cover everything.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Set defaults if not provided
	if cfg.Listen == "" {
		cfg.Listen = ":3000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}
