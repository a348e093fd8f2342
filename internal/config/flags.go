package config

import "flag"

// parseFlags defines and parses the global CLI flags. They override every
// other configuration source.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.StringVar(&cfg.Slot, "slot", cfg.Slot, "Durable slot name")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (file|sqlite)")
	fs.StringVar(&cfg.DefaultSort, "sort", cfg.DefaultSort, "Sort mode (date|priority|alphabetical)")
	fs.StringVar(&cfg.DefaultFilter, "filter", cfg.DefaultFilter, "Completion filter (all|active|completed)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")

	return fs.Parse(args)
}
