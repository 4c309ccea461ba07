// Package config loads the taxstud application configuration from
// .taxstud/config.yaml under the workspace, merging the file over built-in
// defaults. Environment variables override both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all taxstud configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Query defaults applied when flags are omitted
	Query QueryConfig `yaml:"query"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// QueryConfig configures query command defaults.
type QueryConfig struct {
	DefaultSort string `yaml:"default_sort"` // "name" or a facet name; empty = no sort
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "taxstud",
		Version: "1.0.0",
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
		Query: QueryConfig{
			DefaultSort: "",
		},
	}
}

// Path returns the config file location for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, ".taxstud", "config.yaml")
}

// Load reads the workspace config, falling back to defaults when the file
// does not exist. A present-but-broken config is an error rather than a
// silent fallback.
func Load(workspace string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets the environment win over file and defaults.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("TAXSTUD_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if sortField := os.Getenv("TAXSTUD_DEFAULT_SORT"); sortField != "" {
		cfg.Query.DefaultSort = sortField
	}
}

// Save writes the config back to the workspace, creating .taxstud/ if
// needed.
func Save(cfg *Config, workspace string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := Path(workspace)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
