package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "aws-netmap"

// Config holds optional defaults loaded from ~/.config/aws-netmap/config.yaml.
type Config struct {
	DefaultProfile string `yaml:"default_profile"`
	DefaultRegion  string `yaml:"default_region"`
	OutputFormat   string `yaml:"output_format"`
	OutputDir      string `yaml:"output_dir"`
	HistoryDB      string `yaml:"history_db"`
	// ConcurrentListing is a pointer so an absent key keeps the default.
	ConcurrentListing *bool `yaml:"concurrent_listing"`
}

// Dir returns the directory holding the config file and default history
// database.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	dir := Dir()
	if dir == "" {
		return &Config{}, nil
	}
	return LoadFile(filepath.Join(dir, "config.yaml"))
}

// LoadFile reads the config at path. A missing file yields a zero Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Format returns the configured output format, "svg" by default.
func (c *Config) Format() string {
	if c.OutputFormat == "" {
		return "svg"
	}
	return c.OutputFormat
}

// HistoryPath returns the history database path, defaulting to
// history.db next to the config file.
func (c *Config) HistoryPath() string {
	if c.HistoryDB != "" {
		return c.HistoryDB
	}
	return filepath.Join(Dir(), "history.db")
}

// Concurrent reports whether listing calls run concurrently (default true).
func (c *Config) Concurrent() bool {
	return c.ConcurrentListing == nil || *c.ConcurrentListing
}
