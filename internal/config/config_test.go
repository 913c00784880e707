package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASCOPE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("DATASCOPE_API_URL", "")
	t.Setenv("DATASCOPE_LANG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q", cfg.Language)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: \"https://api.example.org\"\nlanguage: \"fr\"\ntheme: \"nord\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATASCOPE_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.org" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Language != "fr" || cfg.Theme != "nord" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: \"fr\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DATASCOPE_CONFIG", path)
	t.Setenv("DATASCOPE_LANG", "en")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Language != "en" {
		t.Errorf("env var did not override file: %q", cfg.Language)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("DATASCOPE_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg := &Config{APIBaseURL: "http://localhost:8000", Language: "fr", Theme: "dracula"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Language != "fr" || loaded.Theme != "dracula" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}
