// Package task owns the task collection and persists it through a durable slot.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Priority ranks a task. It is fixed at creation.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the ordering value of a priority: high=3, medium=2, low=1.
// Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ParsePriority normalizes s into a Priority. The second return value is
// false when s is not a known priority name.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// DefaultCategory is assigned when the user leaves the category blank.
const DefaultCategory = "General"

// Task is a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	Priority  Priority  `json:"priority"`
	Category  string    `json:"category"`
}

// GenerateID creates a unique task identifier.
func GenerateID() string {
	u := uuid.New().String()
	return "task_" + strings.ReplaceAll(u[:8], "-", "")
}

// New builds a task from raw user input. Text and category are trimmed and
// a blank category falls back to DefaultCategory. The caller is responsible
// for rejecting blank text.
func New(text string, priority Priority, category string) Task {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		ID:        GenerateID(),
		Text:      strings.TrimSpace(text),
		Completed: false,
		CreatedAt: time.Now(),
		Priority:  priority,
		Category:  category,
	}
}
