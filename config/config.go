// Package config loads the interpreter's runtime configuration: stack
// size, the host-side instruction cap, whether overflow is fatal,
// instruction tracing, plus where on disk a config file is found.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the interpreter's configurable execution parameters.
type Config struct {
	Execution struct {
		// StackSize is the stack segment size in bytes (default: 8192).
		StackSize uint32 `toml:"stack_size"`

		// MaxInstructions caps Machine.Run's step count; 0 disables the
		// cap. A host safety valve against a guest program that never
		// halts.
		MaxInstructions uint64 `toml:"max_instructions"`

		// OverflowFatal promotes signed-overflow from a non-fatal
		// condition (execution continues) to one that halts the run loop.
		OverflowFatal bool `toml:"overflow_fatal"`

		// Trace enables per-instruction tracing to stderr.
		Trace bool `toml:"trace"`
	} `toml:"execution"`
}

// DefaultConfig returns the configuration used when no config file is
// present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.StackSize = 8192
	cfg.Execution.MaxInstructions = 10_000_000
	cfg.Execution.OverflowFatal = false
	cfg.Execution.Trace = false
	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "mipsvm")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "mipsvm")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to defaults for
// any field the file doesn't set. A missing file is not an error: it
// yields the default configuration.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %q: %w", path, err)
	}

	return cfg, nil
}
