package config

import "os"

// loadFromEnv overrides config from TASKDECK_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKDECK_SLOT"); v != "" {
		cfg.Slot = v
	}
	if v := os.Getenv("TASKDECK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TASKDECK_SORT"); v != "" {
		cfg.DefaultSort = v
	}
	if v := os.Getenv("TASKDECK_FILTER"); v != "" {
		cfg.DefaultFilter = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
