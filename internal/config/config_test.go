package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("NEXATASK_PORT", "8123")
	t.Setenv("NEXATASK_DATABASE_PATH", "/tmp/other.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != 8123 {
		t.Fatalf("expected port 8123, got %d", cfg.Port)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Fatalf("expected database path override, got %q", cfg.DatabasePath)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected untouched default environment, got %q", cfg.Environment)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "port: 9000\nenvironment: production\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected environment 'production', got %q", cfg.Environment)
	}
	if cfg.DatabasePath != Default().DatabasePath {
		t.Fatalf("expected default database path, got %q", cfg.DatabasePath)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for an explicit missing config file")
	}
}
