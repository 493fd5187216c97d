package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "http://localhost:8080"

// Config is the CLI configuration, resolved in order: built-in defaults,
// ~/.fuelops/config.yaml, then environment variables (FUELOPS_API_URL).
type Config struct {
	APIURL      string `yaml:"apiUrl"`
	SessionFile string `yaml:"sessionFile"`
}

// LoadConfig resolves the effective configuration
func LoadConfig() (Config, error) {
	cfg := Config{APIURL: defaultAPIURL}

	home, err := os.UserHomeDir()
	if err == nil {
		cfg.SessionFile = filepath.Join(home, ".fuelops", "session.json")

		path := filepath.Join(home, ".fuelops", "config.yaml")
		if raw, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if url := os.Getenv("FUELOPS_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if file := os.Getenv("FUELOPS_SESSION_FILE"); file != "" {
		cfg.SessionFile = file
	}

	return cfg, nil
}
