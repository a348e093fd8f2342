// Package view computes the displayed task ordering and summary counts.
// Everything here is a pure function over a snapshot of the collection;
// nothing mutates the source slice.
package view

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskdeck/internal/task"
)

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter normalizes s into a Filter.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, true
	}
	return "", false
}

// Sort selects the display ordering.
type Sort string

const (
	SortDate         Sort = "date"
	SortPriority     Sort = "priority"
	SortAlphabetical Sort = "alphabetical"
)

// ParseSort normalizes s into a Sort.
func ParseSort(s string) (Sort, bool) {
	m := Sort(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case SortDate, SortPriority, SortAlphabetical:
		return m, true
	}
	return "", false
}

// CategoryAll is the category selector value that matches every task.
const CategoryAll = "all"

// Params are the four view parameters of the projection.
type Params struct {
	Filter   Filter
	Search   string
	Category string
	Sort     Sort
}

// DefaultParams returns the initial view: everything, newest first.
func DefaultParams() Params {
	return Params{
		Filter:   FilterAll,
		Category: CategoryAll,
		Sort:     SortDate,
	}
}

// Project filters and sorts a snapshot of the collection for display. The
// three predicates (completion, search, category) are ANDed; sorting is
// stable so equal keys keep their insertion order.
func Project(tasks []task.Task, p Params) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(p.Search))

	for _, t := range tasks {
		if !matchFilter(t, p.Filter) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && t.Category != p.Category {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, p.Sort)
	return out
}

func matchFilter(t task.Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	}
	return true
}

func sortTasks(tasks []task.Task, mode Sort) {
	switch mode {
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortAlphabetical:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(tasks, func(i, j int) bool {
			return c.CompareString(tasks[i].Text, tasks[j].Text) < 0
		})
	default: // SortDate: most recent first
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Summary holds the aggregate counts, computed over the full unfiltered
// collection.
type Summary struct {
	Total           int
	Completed       int
	Remaining       int
	PercentComplete int
}

// Summarize computes the aggregates for a collection.
func Summarize(tasks []task.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
	}
	s.Remaining = s.Total - s.Completed
	if s.Total > 0 {
		s.PercentComplete = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// Categories returns the distinct category values in first-seen order,
// preceded by the CategoryAll sentinel.
func Categories(tasks []task.Task) []string {
	out := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, t := range tasks {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
