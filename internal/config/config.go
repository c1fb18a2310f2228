package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Quotes struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"quotes"`
	Session struct {
		RefreshCron string `yaml:"refresh_cron"`
		Currency    string `yaml:"currency"`
	} `yaml:"session"`
	Journal struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"journal"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DECK_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("DECK_QUOTES_URL"); v != "" {
		cfg.Quotes.BaseURL = v
	}
	if v := os.Getenv("DECK_REFRESH_CRON"); v != "" {
		cfg.Session.RefreshCron = v
	}
	if v := os.Getenv("DECK_CURRENCY"); v != "" {
		cfg.Session.Currency = v
	}
	if v := os.Getenv("DECK_JOURNAL_PATH"); v != "" {
		cfg.Journal.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:5001"
	}
	if cfg.Quotes.BaseURL == "" {
		cfg.Quotes.BaseURL = "http://localhost:5002"
	}
	if cfg.Session.RefreshCron == "" {
		// every 5 minutes
		cfg.Session.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Session.Currency == "" {
		cfg.Session.Currency = "USD"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if c.Quotes.BaseURL == "" {
		return fmt.Errorf("quotes.base_url is required")
	}
	if _, err := url.Parse(c.Quotes.BaseURL); err != nil {
		return fmt.Errorf("quotes.base_url: %w", err)
	}
	return nil
}
