package task

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"taskdeck/internal/slot"
)

// Store holds the authoritative task collection, newest first. Every
// successful mutation rewrites the full collection to the durable slot.
//
// Mutators return true when the collection changed. Blank text and unknown
// IDs are silent no-ops, never errors.
type Store struct {
	slot   slot.Slot
	logger *log.Logger
	tasks  []Task
}

// NewStore creates a store backed by s. A nil logger falls back to the
// package default.
func NewStore(s slot.Slot, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{slot: s, logger: logger}
}

// Load reads the persisted collection from the slot. Absent, unreadable, or
// invalid data degrades to an empty collection; Load never fails.
func (s *Store) Load() {
	s.tasks = nil

	data, ok, err := s.slot.Read()
	if err != nil {
		s.logger.Warn("reading persisted tasks, starting empty", "err", err)
		return
	}
	if !ok {
		return
	}

	if err := Validate(data); err != nil {
		s.logger.Warn("persisted tasks failed validation, starting empty", "err", err)
		return
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("decoding persisted tasks, starting empty", "err", err)
		return
	}
	s.tasks = tasks
}

// Tasks returns a snapshot of the collection, newest first. Mutating the
// returned slice does not affect the store.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task matching id.
func (s *Store) Get(id string) (Task, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i], true
		}
	}
	return Task{}, false
}

// Create adds a new task at the front of the collection so the default
// chronological view is newest-first without sorting. Whitespace-only text
// is rejected as a no-op.
func (s *Store) Create(text string, priority Priority, category string) (Task, bool) {
	if strings.TrimSpace(text) == "" {
		return Task{}, false
	}

	t := New(text, priority, category)
	s.tasks = append([]Task{t}, s.tasks...)
	s.persist()
	return t, true
}

// Toggle flips the completion state of the task matching id.
func (s *Store) Toggle(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist()
			return true
		}
	}
	return false
}

// Edit replaces the text of the task matching id. Whitespace-only text is
// rejected as a no-op.
func (s *Store) Edit(id, newText string) bool {
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return false
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Text = trimmed
			s.persist()
			return true
		}
	}
	return false
}

// Delete removes the task matching id.
func (s *Store) Delete(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// persist rewrites the full collection to the slot. Writes are
// fire-and-forget: failures are logged, not surfaced.
func (s *Store) persist() {
	tasks := s.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		s.logger.Error("marshaling tasks", "err", err)
		return
	}
	data = append(data, '\n')

	if err := s.slot.Write(data); err != nil {
		s.logger.Error("persisting tasks", "err", err)
	}
}
