package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persisted user configuration.
type Config struct {
	// PollIntervalSeconds is the device-change watcher period.
	PollIntervalSeconds int `json:"poll_interval_seconds"`
	// MaxAncestorDepth caps upward walks through the device topology.
	MaxAncestorDepth int `json:"max_ancestor_depth"`
	// ShowHiddenFiles toggles hidden entries in directory listings.
	ShowHiddenFiles bool `json:"show_hidden_files"`
	// DefaultBrowseRoot is the directory `browse` opens when no path is
	// given.
	DefaultBrowseRoot string `json:"default_browse_root"`
}

func defaults() *Config {
	return &Config{
		PollIntervalSeconds: 2,
		MaxAncestorDepth:    10,
	}
}

// PollInterval returns the watcher period as a duration.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

func configFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "umanager", "config.json"), nil
}

// Load reads the config file, falling back to defaults when it is missing
// or corrupted.
func Load() *Config {
	cfg := defaults()

	path, err := configFile()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return defaults()
	}
	return cfg
}

// Save writes the config file, creating the directory as needed.
func Save(cfg *Config) error {
	path, err := configFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
