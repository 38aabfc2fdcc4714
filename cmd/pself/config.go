package main

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the pself configuration file
// (~/.config/pself/config.yaml). A missing file yields a zero Config;
// command-line flags always win over file values.
type Config struct {
	OutputDir string `yaml:"output_dir"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Hunt defaults
	HuntPatterns []string `yaml:"hunt_patterns"`
	HuntInterval string   `yaml:"hunt_interval"`

	// Server
	ServeAddress string `yaml:"serve_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pself", "config.yaml")
}

func loadConfig() Config {
	var cfg Config
	path := configPath()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	// A malformed config is ignored rather than fatal; flags still work.
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}

// huntInterval parses the configured hunt interval, defaulting to 5s.
func (c Config) huntInterval() time.Duration {
	if c.HuntInterval == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(c.HuntInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
