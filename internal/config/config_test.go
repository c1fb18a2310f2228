package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://localhost:5001" {
		t.Errorf("backend url = %s", cfg.Backend.BaseURL)
	}
	if cfg.Quotes.BaseURL != "http://localhost:5002" {
		t.Errorf("quotes url = %s", cfg.Quotes.BaseURL)
	}
	if cfg.Session.Currency != "USD" {
		t.Errorf("currency = %s", cfg.Session.Currency)
	}
	if cfg.Session.RefreshCron == "" {
		t.Error("refresh cron default missing")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	body := `
backend:
  base_url: http://file:5001
quotes:
  base_url: http://file:5002
session:
  currency: EUR
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DECK_QUOTES_URL", "http://env:5002")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://file:5001" {
		t.Errorf("backend url = %s, want file value", cfg.Backend.BaseURL)
	}
	if cfg.Quotes.BaseURL != "http://env:5002" {
		t.Errorf("quotes url = %s, env must override file", cfg.Quotes.BaseURL)
	}
	if cfg.Session.Currency != "EUR" {
		t.Errorf("currency = %s", cfg.Session.Currency)
	}
}

func TestValidate_RejectsEmptyURL(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("empty backend url must fail validation")
	}
}
