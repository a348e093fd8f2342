// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if cfg.Slot != DefaultSlotName {
		t.Errorf("Slot: got %q, want %q", cfg.Slot, DefaultSlotName)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("Backend: got %q, want file", cfg.Backend)
	}
	if cfg.DefaultSort != "date" {
		t.Errorf("DefaultSort: got %q, want date", cfg.DefaultSort)
	}
	if cfg.DefaultFilter != "all" {
		t.Errorf("DefaultFilter: got %q, want all", cfg.DefaultFilter)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TASKDECK_BACKEND", "sqlite")
	t.Setenv("TASKDECK_SORT", "priority")
	t.Setenv("TASKDECK_SLOT", "work")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
	if cfg.DefaultSort != "priority" {
		t.Errorf("DefaultSort: got %q, want priority", cfg.DefaultSort)
	}
	if cfg.Slot != "work" {
		t.Errorf("Slot: got %q, want work", cfg.Slot)
	}
}

func TestParseFlagsOverride(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	err := parseFlags(cfg, fs, []string{"-backend", "sqlite", "-filter", "active"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
	if cfg.DefaultFilter != "active" {
		t.Errorf("DefaultFilter: got %q, want active", cfg.DefaultFilter)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskdeck.toml")
	content := `
data_dir = "/tmp/taskdeck-test"
backend = "sqlite"
default_sort = "alphabetical"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadConfigFile(cfg, path); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.DataDir != "/tmp/taskdeck-test" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend: got %q, want sqlite", cfg.Backend)
	}
	if cfg.DefaultSort != "alphabetical" {
		t.Errorf("DefaultSort: got %q, want alphabetical", cfg.DefaultSort)
	}
	// Untouched fields keep their defaults.
	if cfg.Slot != DefaultSlotName {
		t.Errorf("Slot: got %q, want %q", cfg.Slot, DefaultSlotName)
	}
}

func TestFinalizeConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad backend", func(c *Config) { c.Backend = "redis" }},
		{"bad sort", func(c *Config) { c.DefaultSort = "created" }},
		{"bad filter", func(c *Config) { c.DefaultFilter = "done" }},
		{"empty slot", func(c *Config) { c.Slot = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			cfg.DataDir = t.TempDir()
			tt.mutate(cfg)
			if err := finalizeConfig(cfg); err == nil {
				t.Error("finalizeConfig: got nil, want error")
			}
		})
	}
}

func TestFinalizeConfigExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	if err := finalizeConfig(cfg); err != nil {
		t.Fatalf("finalizeConfig: %v", err)
	}

	want := filepath.Join(home, ".taskdeck")
	if cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
}

func TestDBPath(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	if got := cfg.DBPath(); got != filepath.Join("/data", "taskdeck.db") {
		t.Errorf("DBPath: got %q", got)
	}
}
