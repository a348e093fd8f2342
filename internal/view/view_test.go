package view

import (
	"testing"
	"time"

	"taskdeck/internal/task"
)

// mkTask builds a test task. Collections are built newest-first, matching
// the store's insertion convention.
func mkTask(id, text string, completed bool, priority task.Priority, category string, created time.Time) task.Task {
	return task.Task{
		ID:        id,
		Text:      text,
		Completed: completed,
		CreatedAt: created,
		Priority:  priority,
		Category:  category,
	}
}

func sampleTasks() []task.Task {
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	return []task.Task{
		mkTask("task_4", "Review pull request", false, task.PriorityLow, "Work", base.Add(3*time.Hour)),
		mkTask("task_3", "Buy milk", false, task.PriorityHigh, "Errands", base.Add(2*time.Hour)),
		mkTask("task_2", "Ship code", false, task.PriorityHigh, "Work", base.Add(time.Hour)),
		mkTask("task_1", "Write spec", true, task.PriorityMedium, "Work", base),
	}
}

func ids(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProjectFilter(t *testing.T) {
	tasks := sampleTasks()

	all := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortDate})
	if len(all) != 4 {
		t.Errorf("all: got %d tasks, want 4", len(all))
	}

	active := Project(tasks, Params{Filter: FilterActive, Category: CategoryAll, Sort: SortDate})
	for _, tsk := range active {
		if tsk.Completed {
			t.Errorf("active view contains completed task %s", tsk.ID)
		}
	}

	completed := Project(tasks, Params{Filter: FilterCompleted, Category: CategoryAll, Sort: SortDate})
	for _, tsk := range completed {
		if !tsk.Completed {
			t.Errorf("completed view contains active task %s", tsk.ID)
		}
	}

	// active and completed partition the collection with no overlap.
	if len(active)+len(completed) != len(tasks) {
		t.Errorf("partition: %d active + %d completed != %d total", len(active), len(completed), len(tasks))
	}
	seen := make(map[string]bool)
	for _, tsk := range append(active, completed...) {
		if seen[tsk.ID] {
			t.Errorf("task %s appears in both partitions", tsk.ID)
		}
		seen[tsk.ID] = true
	}
}

func TestProjectSearch(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"task_4", "task_3", "task_2", "task_1"}},
		{"MILK", []string{"task_3"}},
		{"code", []string{"task_2"}},
		{"  spec ", []string{"task_1"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Project(tasks, Params{Filter: FilterAll, Search: tt.search, Category: CategoryAll, Sort: SortDate})
			if !equalIDs(ids(got), tt.want...) {
				t.Errorf("search %q: got %v, want %v", tt.search, ids(got), tt.want)
			}
		})
	}
}

func TestProjectCategory(t *testing.T) {
	tasks := sampleTasks()

	work := Project(tasks, Params{Filter: FilterAll, Category: "Work", Sort: SortDate})
	if !equalIDs(ids(work), "task_4", "task_2", "task_1") {
		t.Errorf("Work: got %v", ids(work))
	}

	// Category match is exact and case-sensitive.
	lower := Project(tasks, Params{Filter: FilterAll, Category: "work", Sort: SortDate})
	if len(lower) != 0 {
		t.Errorf("category %q: got %d tasks, want 0", "work", len(lower))
	}
}

func TestProjectSortDate(t *testing.T) {
	tasks := sampleTasks()
	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortDate})
	if !equalIDs(ids(got), "task_4", "task_3", "task_2", "task_1") {
		t.Errorf("date sort: got %v, want most recent first", ids(got))
	}
}

func TestProjectSortDateStableOnTies(t *testing.T) {
	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		mkTask("task_c", "c", false, task.PriorityLow, "General", created),
		mkTask("task_b", "b", false, task.PriorityLow, "General", created),
		mkTask("task_a", "a", false, task.PriorityLow, "General", created),
	}

	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortDate})
	if !equalIDs(ids(got), "task_c", "task_b", "task_a") {
		t.Errorf("equal timestamps: got %v, want insertion order preserved", ids(got))
	}
}

func TestProjectSortPriority(t *testing.T) {
	tasks := sampleTasks()
	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortPriority})

	// high > medium > low; ties keep collection order (task_3 before task_2).
	if !equalIDs(ids(got), "task_3", "task_2", "task_1", "task_4") {
		t.Errorf("priority sort: got %v", ids(got))
	}
}

func TestProjectSortAlphabetical(t *testing.T) {
	tasks := sampleTasks()
	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortAlphabetical})
	if !equalIDs(ids(got), "task_3", "task_4", "task_2", "task_1") {
		t.Errorf("alphabetical sort: got %v", ids(got))
	}
}

func TestProjectSortAlphabeticalIgnoresCase(t *testing.T) {
	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		mkTask("task_1", "banana", false, task.PriorityLow, "General", created),
		mkTask("task_2", "Apple", false, task.PriorityLow, "General", created),
	}

	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortAlphabetical})
	if !equalIDs(ids(got), "task_2", "task_1") {
		t.Errorf("case-insensitive sort: got %v, want Apple before banana", ids(got))
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		done int
		all  int
		want Summary
	}{
		{"empty", 0, 0, Summary{Total: 0, Completed: 0, Remaining: 0, PercentComplete: 0}},
		{"none done", 0, 4, Summary{Total: 4, Completed: 0, Remaining: 4, PercentComplete: 0}},
		{"one of four", 1, 4, Summary{Total: 4, Completed: 1, Remaining: 3, PercentComplete: 25}},
		{"one of three rounds", 1, 3, Summary{Total: 3, Completed: 1, Remaining: 2, PercentComplete: 33}},
		{"two of three rounds", 2, 3, Summary{Total: 3, Completed: 2, Remaining: 1, PercentComplete: 67}},
		{"all done", 4, 4, Summary{Total: 4, Completed: 4, Remaining: 0, PercentComplete: 100}},
	}

	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []task.Task
			for i := 0; i < tt.all; i++ {
				tasks = append(tasks, mkTask("", "t", i < tt.done, task.PriorityLow, "General", created))
			}
			got := Summarize(tasks)
			if got != tt.want {
				t.Errorf("Summarize: got %+v, want %+v", got, tt.want)
			}
			if got.Completed+got.Remaining != got.Total {
				t.Errorf("completed+remaining != total: %+v", got)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	tasks := sampleTasks()
	got := Categories(tasks)
	want := []string{CategoryAll, "Work", "Errands"}
	if len(got) != len(want) {
		t.Fatalf("Categories: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoriesEmpty(t *testing.T) {
	got := Categories(nil)
	if len(got) != 1 || got[0] != CategoryAll {
		t.Errorf("Categories(nil): got %v, want [%s]", got, CategoryAll)
	}
}

// Scenario from the store contract: one fresh task.
func TestScenarioSingleTask(t *testing.T) {
	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	tasks := []task.Task{mkTask("task_1", "Buy milk", false, task.PriorityHigh, task.DefaultCategory, created)}

	got := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortDate})
	if !equalIDs(ids(got), "task_1") {
		t.Errorf("view: got %v, want [task_1]", ids(got))
	}

	s := Summarize(tasks)
	want := Summary{Total: 1, Completed: 0, Remaining: 1, PercentComplete: 0}
	if s != want {
		t.Errorf("summary: got %+v, want %+v", s, want)
	}
}

// Scenario: priority sort and completion filter over two tasks.
func TestScenarioTwoTasks(t *testing.T) {
	created := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	tasks := []task.Task{
		mkTask("task_2", "Ship code", false, task.PriorityHigh, "General", created.Add(time.Hour)),
		mkTask("task_1", "Write spec", true, task.PriorityMedium, "General", created),
	}

	byPriority := Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortPriority})
	if !equalIDs(ids(byPriority), "task_2", "task_1") {
		t.Errorf("priority view: got %v, want [Ship code, Write spec]", ids(byPriority))
	}

	completed := Project(tasks, Params{Filter: FilterCompleted, Category: CategoryAll, Sort: SortDate})
	if !equalIDs(ids(completed), "task_1") {
		t.Errorf("completed view: got %v, want [Write spec]", ids(completed))
	}
}

func TestParseFilter(t *testing.T) {
	if f, ok := ParseFilter(" Active "); !ok || f != FilterActive {
		t.Errorf("ParseFilter: got %q/%v", f, ok)
	}
	if _, ok := ParseFilter("done"); ok {
		t.Error("ParseFilter(done): got ok, want false")
	}
}

func TestParseSort(t *testing.T) {
	if s, ok := ParseSort("PRIORITY"); !ok || s != SortPriority {
		t.Errorf("ParseSort: got %q/%v", s, ok)
	}
	if _, ok := ParseSort("created"); ok {
		t.Error("ParseSort(created): got ok, want false")
	}
}

func TestProjectDoesNotMutateSource(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)

	Project(tasks, Params{Filter: FilterAll, Category: CategoryAll, Sort: SortAlphabetical})

	after := ids(tasks)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("source order changed: got %v, want %v", after, before)
		}
	}
}
