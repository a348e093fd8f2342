// Package cmd implements the CLI command structure for taskdeck.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/slot"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdeck CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdeck", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := newLogger(cfg)

	// Determine the subcommand. With no subcommand, open the TUI on a
	// terminal and fall back to a plain listing otherwise.
	subcommand := "tui"
	if !ui.IsTTY(os.Stdout) {
		subcommand = "ls"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, logger, remainingArgs)
	case "toggle", "done":
		return toggleCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, logger, remainingArgs)
	case "categories":
		return categoriesCommand(cfg, logger, remainingArgs)
	case "stats":
		return statsCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the console logger from config.
func newLogger(cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "taskdeck",
	})
}

// openStore opens the configured slot backend and loads the collection.
// The returned closer releases backend resources (no-op for the file
// backend).
func openStore(cfg *config.Config, logger *log.Logger) (*task.Store, func() error, error) {
	var (
		s      slot.Slot
		closer = func() error { return nil }
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		sq, err := slot.OpenSQLiteSlot(cfg.DBPath(), cfg.Slot)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		s = sq
		closer = sq.Close
	default:
		s = slot.NewFileSlot(cfg.DataDir, cfg.Slot)
	}

	store := task.NewStore(s, logger)
	store.Load()
	return store, closer, nil
}

// resolveID finds the task whose ID matches ref, by whole ID or by unique
// prefix. The "task_" prefix may be omitted.
func resolveID(store *task.Store, ref string) (string, bool) {
	if _, ok := store.Get(ref); ok {
		return ref, true
	}

	var matches []string
	for _, t := range store.Tasks() {
		if strings.HasPrefix(t.ID, ref) || strings.HasPrefix(strings.TrimPrefix(t.ID, "task_"), ref) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

func versionCommand() error {
	fmt.Printf("taskdeck %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskdeck - local task-list manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskdeck [flags] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                        Interactive UI (default on a terminal)")
	fmt.Fprintln(w, "  add <text>                 Add a task")
	fmt.Fprintln(w, "  ls                         List tasks")
	fmt.Fprintln(w, "  toggle <id>                Toggle a task's completion")
	fmt.Fprintln(w, "  edit <id> <text>           Replace a task's text")
	fmt.Fprintln(w, "  rm <id>                    Delete a task")
	fmt.Fprintln(w, "  categories                 List known categories")
	fmt.Fprintln(w, "  stats                      Show aggregate counts")
	fmt.Fprintln(w, "  version                    Show version")
	fmt.Fprintln(w, "  help                       Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
