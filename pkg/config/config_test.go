package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected base URL 'http://localhost:8000', got %q", cfg.API.BaseURL)
	}

	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30, got %d", cfg.API.TimeoutSeconds)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got %q", cfg.LogLevel)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".agrodesk", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("Expected default base URL, got %q", cfg.API.BaseURL)
	}

	// File should exist now
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	initial := Default()
	initial.API.BaseURL = "https://helpdesk.example.com"
	initial.User = "operator-7"
	if err := Save(configPath, initial); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BaseURL != "https://helpdesk.example.com" {
		t.Errorf("Expected saved base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.User != "operator-7" {
		t.Errorf("Expected saved user, got %q", cfg.User)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	t.Setenv("AGRODESK_API_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("AGRODESK_LOG_LEVEL", "debug")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.API.BaseURL != "http://10.0.0.5:9000" {
		t.Errorf("Expected env override for base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected env override for log level, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"empty base URL", func(c *Config) { c.API.BaseURL = "" }, true},
		{"relative base URL", func(c *Config) { c.API.BaseURL = "localhost:8000" }, true},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"https is valid", func(c *Config) { c.API.BaseURL = "https://example.com" }, false},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, true},
		{"negative timeout", func(c *Config) { c.API.TimeoutSeconds = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
