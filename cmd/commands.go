package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/task"
	"taskdeck/internal/ui"
	"taskdeck/internal/view"
)

// addCommand creates a new task.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck add", flag.ContinueOnError)
	priorityArg := fs.String("priority", string(task.PriorityMedium), "Task priority (low|medium|high)")
	categoryArg := fs.String("category", "", "Task category (defaults to "+task.DefaultCategory+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("add requires task text")
	}

	priority, ok := task.ParsePriority(*priorityArg)
	if !ok {
		return fmt.Errorf("unknown priority %q (want low, medium, or high)", *priorityArg)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	t, ok := store.Create(text, priority, *categoryArg)
	if !ok {
		return fmt.Errorf("add requires non-blank task text")
	}
	fmt.Printf("Added %s: %s\n", t.ID, t.Text)
	return nil
}

// lsCommand prints the projected view.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskdeck ls", flag.ContinueOnError)
	filterArg := fs.String("filter", cfg.DefaultFilter, "Completion filter (all|active|completed)")
	searchArg := fs.String("search", "", "Search term")
	categoryArg := fs.String("category", view.CategoryAll, "Category selector (all or an exact category)")
	sortArg := fs.String("sort", cfg.DefaultSort, "Sort mode (date|priority|alphabetical)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter, ok := view.ParseFilter(*filterArg)
	if !ok {
		return fmt.Errorf("unknown filter %q", *filterArg)
	}
	sortMode, ok := view.ParseSort(*sortArg)
	if !ok {
		return fmt.Errorf("unknown sort mode %q", *sortArg)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	tasks := store.Tasks()
	projected := view.Project(tasks, view.Params{
		Filter:   filter,
		Search:   *searchArg,
		Category: *categoryArg,
		Sort:     sortMode,
	})

	if len(projected) == 0 {
		fmt.Println("No tasks match the current view.")
	}
	for _, t := range projected {
		fmt.Println(formatTaskLine(t))
	}

	s := view.Summarize(tasks)
	fmt.Printf("\n%d total, %d done, %d remaining (%d%%)\n", s.Total, s.Completed, s.Remaining, s.PercentComplete)
	return nil
}

// toggleCommand flips a task's completion state.
func toggleCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("toggle requires exactly one task id")
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	id, ok := resolveID(store, args[0])
	if !ok {
		fmt.Printf("No task matching %q\n", args[0])
		return nil
	}
	store.Toggle(id)
	t, _ := store.Get(id)
	state := "active"
	if t.Completed {
		state = "done"
	}
	fmt.Printf("Toggled %s: %s (%s)\n", t.ID, t.Text, state)
	return nil
}

// editCommand replaces a task's text.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("edit requires a task id and new text")
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	id, ok := resolveID(store, args[0])
	if !ok {
		fmt.Printf("No task matching %q\n", args[0])
		return nil
	}

	newText := strings.Join(args[1:], " ")
	if !store.Edit(id, newText) {
		return fmt.Errorf("edit requires non-blank task text")
	}
	t, _ := store.Get(id)
	fmt.Printf("Edited %s: %s\n", t.ID, t.Text)
	return nil
}

// rmCommand deletes a task.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("rm requires exactly one task id")
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	id, ok := resolveID(store, args[0])
	if !ok {
		fmt.Printf("No task matching %q\n", args[0])
		return nil
	}
	t, _ := store.Get(id)
	store.Delete(id)
	fmt.Printf("Deleted %s: %s\n", t.ID, t.Text)
	return nil
}

// categoriesCommand lists the known categories in first-seen order.
func categoriesCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	for _, c := range view.Categories(store.Tasks()) {
		fmt.Println(c)
	}
	return nil
}

// statsCommand prints the aggregate counts with a completion bar.
func statsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	s := view.Summarize(store.Tasks())
	fmt.Printf("Total:     %d\n", s.Total)
	fmt.Printf("Done:      %d\n", s.Completed)
	fmt.Printf("Remaining: %d\n", s.Remaining)
	fmt.Printf("Progress:  %s %d%%\n", statsBar(s, 30), s.PercentComplete)
	return nil
}

// tuiCommand launches the interactive UI.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	store, closer, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closer()

	filter, _ := view.ParseFilter(cfg.DefaultFilter)
	sortMode, _ := view.ParseSort(cfg.DefaultSort)
	params := view.DefaultParams()
	params.Filter = filter
	params.Sort = sortMode

	return ui.RunTUI(ctx, store, params)
}

func formatTaskLine(t task.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	return fmt.Sprintf("%s %s  (%s) %s  #%s  %s",
		check, t.ID, t.Priority, t.Text, t.Category, t.CreatedAt.Format("2006-01-02 15:04"))
}

func statsBar(s view.Summary, width int) string {
	filled := 0
	if s.Total > 0 {
		filled = s.PercentComplete * width / 100
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
