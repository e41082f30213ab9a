package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("../../config/config.yaml")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected log_level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Server.GRPCAddr != ":50051" || cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("Unexpected server addresses %q %q", cfg.Server.GRPCAddr, cfg.Server.HTTPAddr)
	}
	timeout, err := cfg.Server.GetShutdownTimeout()
	if err != nil || timeout != 10*time.Second {
		t.Errorf("Expected shutdown timeout 10s, got %v (%v)", timeout, err)
	}

	if cfg.Search.Window.Size != 7 || cfg.Search.Window.Depth != 2 {
		t.Errorf("Unexpected window %+v", cfg.Search.Window)
	}
	if len(cfg.Instruments) != 2 {
		t.Fatalf("Expected 2 instruments, got %d", len(cfg.Instruments))
	}
	if cfg.Instruments[1].Strings[2] != 440 {
		t.Errorf("Expected mandolin string 2 at 440 Hz, got %v", cfg.Instruments[1].Strings[2])
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected validation error")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Server.MaxStoredRuns != 100 {
		t.Errorf("Expected default max_stored_runs 100, got %d", cfg.Server.MaxStoredRuns)
	}
	if err := validateConfig(cfg); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}
