package config

import (
	"os"

	"github.com/y3pio/unicon/internal/paths"
)

// Default configuration values (in code, not persisted).
// The GitHub token is deliberately absent: it is read from the environment
// only and never written to disk.
var Defaults = map[string]func() string{
	"github_username": func() string { return os.Getenv("GITHUB_USERNAME") },
	"github_api_url":  func() string { return envOr("GITHUB_API_URL", "https://api.github.com") },
	"affiliations":    func() string { return "" },
	"since":           func() string { return "" },
	"exports_path":    func() string { return paths.ExportsDir() },
	"replay_repo":     func() string { return paths.ReplayRepoDir() },
	"enable_log":      func() string { return "true" },
	"fetch_last":      func() string { return "0" },
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Get returns the value for a config key.
// It checks the config file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	lines, err := ReadLines()
	if err != nil {
		if defaultFn, ok := Defaults[key]; ok {
			return defaultFn(), true
		}
		return "", false
	}

	cfg, err := Parse(lines)
	if err != nil {
		if defaultFn, ok := Defaults[key]; ok {
			return defaultFn(), true
		}
		return "", false
	}

	if value, exists := cfg[key]; exists && value != "" {
		return value, true
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns all config values (user overrides merged with defaults).
func GetAll() (map[string]string, error) {
	merged := make(map[string]string, len(Defaults))
	for key, fn := range Defaults {
		merged[key] = fn()
	}

	lines, err := ReadLines()
	if err != nil {
		return merged, err
	}

	cfg, err := Parse(lines)
	if err != nil {
		return merged, err
	}

	for key, value := range cfg {
		if value != "" {
			merged[key] = value
		}
	}

	return merged, nil
}

// Token returns the GitHub token from the environment.
func Token() string {
	return os.Getenv("GITHUB_TOKEN")
}
