// Package slot provides named durable slots in a local key-value store.
// A slot holds one opaque payload; taskdeck keeps its entire task
// collection in a single slot.
package slot

import (
	"fmt"
	"os"
	"path/filepath"
)

// Slot is a single named entry in a durable store.
type Slot interface {
	// Read returns the slot payload. ok is false when the slot has never
	// been written.
	Read() (data []byte, ok bool, err error)
	// Write replaces the slot payload.
	Write(data []byte) error
}

// FileSlot stores the payload as one file per slot under a base directory.
type FileSlot struct {
	path string
}

// NewFileSlot creates a file-backed slot named name under dir.
func NewFileSlot(dir, name string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, name+".json")}
}

// Path returns the backing file path.
func (s *FileSlot) Path() string {
	return s.path
}

// Read returns the slot file contents. A missing file is not an error.
func (s *FileSlot) Read() ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot: %w", err)
	}
	return data, true, nil
}

// Write atomically replaces the slot file using a temp file + rename.
func (s *FileSlot) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write slot tmp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename slot: %w", err)
	}
	return nil
}
