package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LocalIP != nil || cfg.LogFormat != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "local_ip: 192.168.1.20\nlog_format: json\nverbose: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LocalIP == nil || *cfg.LocalIP != "192.168.1.20" {
		t.Fatalf("LocalIP = %v, want 192.168.1.20", cfg.LocalIP)
	}
	if cfg.LogFormat == nil || *cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %v, want json", cfg.LogFormat)
	}
	if cfg.Verbose == nil || !*cfg.Verbose {
		t.Fatalf("Verbose = %v, want true", cfg.Verbose)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("bogus_field: true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log_format: xml\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid log_format, got nil")
	}
}

func TestDefaultPathNonEmpty(t *testing.T) {
	if DefaultPath() == "" {
		t.Fatal("DefaultPath() returned empty string")
	}
}
