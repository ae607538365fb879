package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	content := "defaultLevel: DEBUG\nservice: shadowdp\nsinks:\n  - type: console\n    format: console\n    console:\n      stream: stderr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DefaultLevel != "DEBUG" || cfg.Service != "shadowdp" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigRejectsStdoutConsole(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	content := "service: shadowdp\nsinks:\n  - type: console\n    console:\n      stream: stdout\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected stdout console sink to be rejected")
	}
}

func TestDefaultConfigHasStderrConsoleSink(t *testing.T) {
	cfg := DefaultConfig("shadowdp")
	if len(cfg.Sinks) != 1 || cfg.Sinks[0].Type != "console" {
		t.Fatalf("expected single console sink, got %+v", cfg.Sinks)
	}
	if cfg.Sinks[0].Console.Stream != "stderr" {
		t.Errorf("expected stderr stream, got %q", cfg.Sinks[0].Console.Stream)
	}
}
