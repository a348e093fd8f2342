// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/view"
)

// Default values.
const (
	DefaultDataDir  = "~/.taskdeck"
	DefaultSlotName = "tasks"
	DefaultBackend  = "file"
	DefaultSortMode = "date"
	DefaultFilter   = "all"
	DefaultLogLevel = "warn"
)

// Backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the full configuration for taskdeck.
type Config struct {
	// Storage
	DataDir string `toml:"data_dir"`
	Slot    string `toml:"slot"`
	Backend string `toml:"backend"`

	// Initial view
	DefaultSort   string `toml:"default_sort"`
	DefaultFilter string `toml:"default_filter"`

	// Logging
	LogLevel string `toml:"log_level"`
}

// setDefaults fills cfg with the built-in defaults.
func setDefaults(cfg *Config) {
	cfg.DataDir = DefaultDataDir
	cfg.Slot = DefaultSlotName
	cfg.Backend = DefaultBackend
	cfg.DefaultSort = DefaultSortMode
	cfg.DefaultFilter = DefaultFilter
	cfg.LogLevel = DefaultLogLevel
}

// finalizeConfig expands paths and validates enumerated fields.
func finalizeConfig(cfg *Config) error {
	dir, err := expandHome(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}
	cfg.DataDir = dir

	if cfg.Slot == "" {
		return fmt.Errorf("slot name must not be empty")
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return fmt.Errorf("unknown backend %q (want file or sqlite)", cfg.Backend)
	}
	if _, ok := view.ParseSort(cfg.DefaultSort); !ok {
		return fmt.Errorf("unknown sort mode %q (want date, priority, or alphabetical)", cfg.DefaultSort)
	}
	if _, ok := view.ParseFilter(cfg.DefaultFilter); !ok {
		return fmt.Errorf("unknown filter %q (want all, active, or completed)", cfg.DefaultFilter)
	}
	return nil
}

// DBPath returns the SQLite database path for the sqlite backend.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "taskdeck.db")
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/")), nil
	}
	return path, nil
}
