package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for the CLI. Every field can come
// from a YAML file, the environment, or a flag; flags win.
type Config struct {
	AccessToken string `yaml:"access_token"`
	BaseURL     string `yaml:"base_url"`
	APIVersion  string `yaml:"api_version"`
}

// LoadConfig reads a YAML config file and fills missing fields from the
// environment (WIT_ACCESS_TOKEN, WIT_URL, WIT_API_VERSION). A missing file
// is not an error; the environment alone may be enough.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.AccessToken == "" {
		cfg.AccessToken = os.Getenv("WIT_ACCESS_TOKEN")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("WIT_URL")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = os.Getenv("WIT_API_VERSION")
	}

	return cfg, nil
}

// Validate reports whether the config is usable for remote calls.
func (c Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("no access token: set WIT_ACCESS_TOKEN or access_token in the config file")
	}
	return nil
}
