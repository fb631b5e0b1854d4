// Package config defines the CLI configuration and how it is layered from
// defaults, an optional YAML file and RUGBYMETRICS_ environment variables.
package config

import (
	"os"
	"path/filepath"
)

// Config contains process configuration.
type Config struct {
	// DBPath is the SQLite match cache.
	DBPath string `koanf:"db_path"`

	// BackendURL is the base URL of the REST event source.
	BackendURL string `koanf:"backend_url"`

	// BackendTimeoutSec bounds each backend request.
	BackendTimeoutSec int `koanf:"backend_timeout_sec"`

	// OurTeams overrides the volume heuristic that picks "our" team.
	OurTeams []string `koanf:"our_teams"`

	// ExtraTime enables the +80' bucket.
	ExtraTime bool `koanf:"extra_time"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// AnalyzeModel is the Anthropic model used by the analyze command.
	AnalyzeModel string `koanf:"analyze_model"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		DBPath:            filepath.Join(userHome(), ".rugbymetrics", "matches.db"),
		BackendURL:        "http://localhost:5001",
		BackendTimeoutSec: 30,
		OurTeams:          []string{},
		LogLevel:          "warn",
		AnalyzeModel:      "claude-haiku-4-5-20251001",
	}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
