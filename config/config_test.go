package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Execution.StackSize != 8192 {
		t.Errorf("Expected StackSize=8192, got %d", cfg.Execution.StackSize)
	}
	if cfg.Execution.MaxInstructions != 10_000_000 {
		t.Errorf("Expected MaxInstructions=10000000, got %d", cfg.Execution.MaxInstructions)
	}
	if cfg.Execution.OverflowFatal {
		t.Error("Expected OverflowFatal=false")
	}
	if cfg.Execution.Trace {
		t.Error("Expected Trace=false")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadFrom with missing file returned error: %v", err)
	}
	if cfg.Execution.StackSize != 8192 {
		t.Errorf("Expected default StackSize=8192, got %d", cfg.Execution.StackSize)
	}
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[execution]
stack_size = 65536
max_instructions = 500
overflow_fatal = true
trace = true
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Execution.StackSize != 65536 {
		t.Errorf("Expected StackSize=65536, got %d", cfg.Execution.StackSize)
	}
	if cfg.Execution.MaxInstructions != 500 {
		t.Errorf("Expected MaxInstructions=500, got %d", cfg.Execution.MaxInstructions)
	}
	if !cfg.Execution.OverflowFatal {
		t.Error("Expected OverflowFatal=true")
	}
	if !cfg.Execution.Trace {
		t.Error("Expected Trace=true")
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected an error for malformed config, got nil")
	}
}
