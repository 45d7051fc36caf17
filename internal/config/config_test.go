package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourcesDir != "data/sources" {
		t.Errorf("SourcesDir = %q", cfg.SourcesDir)
	}
	if cfg.OutputDir != "data/output" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.WindowDays != 60 {
		t.Errorf("WindowDays = %d", cfg.WindowDays)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourcesDir != "data/sources" {
		t.Errorf("SourcesDir = %q", cfg.SourcesDir)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sources_dir: /tmp/sources
output_dir: /tmp/output
window_days: 14
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SourcesDir != "/tmp/sources" {
		t.Errorf("SourcesDir = %q", cfg.SourcesDir)
	}
	if cfg.WindowDays != 14 {
		t.Errorf("WindowDays = %d", cfg.WindowDays)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Unset fields still receive defaults.
	if len(cfg.LegacyDirs) == 0 {
		t.Error("LegacyDirs default not applied")
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("PIPELINE_TEST_OUT", "/tmp/env-output")
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output_dir: ${PIPELINE_TEST_OUT}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutputDir != "/tmp/env-output" {
		t.Errorf("OutputDir = %q, want env expansion", cfg.OutputDir)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sources_dir: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
