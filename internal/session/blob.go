package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Blob persists a single serialized session snapshot under a fixed key.
type Blob interface {
	// Load returns the persisted session, with ok=false when none exists.
	Load() (snap Session, ok bool, err error)
	// Save replaces the persisted session.
	Save(snap Session) error
	// Clear removes the persisted session.
	Clear() error
}

// FileBlob stores the session as a JSON file.
type FileBlob struct {
	path string
}

// NewFileBlob creates a FileBlob at path, creating parent directories on
// first save.
func NewFileBlob(path string) *FileBlob {
	return &FileBlob{path: path}
}

func (b *FileBlob) Load() (Session, bool, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("read session file: %w", err)
	}

	var snap Session
	if err := json.Unmarshal(data, &snap); err != nil {
		return Session{}, false, fmt.Errorf("decode session file: %w", err)
	}
	return snap, true, nil
}

func (b *FileBlob) Save(snap Session) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	// 0600: the blob holds a live credential
	if err := os.WriteFile(b.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (b *FileBlob) Clear() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemoryBlob keeps the snapshot in memory. Used in tests and for processes
// that do not want durability.
type MemoryBlob struct {
	mu   sync.Mutex
	snap Session
	set  bool

	// FailLoad and FailSave inject storage errors in tests.
	FailLoad error
	FailSave error
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (b *MemoryBlob) Load() (Session, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailLoad != nil {
		return Session{}, false, b.FailLoad
	}
	return b.snap, b.set, nil
}

func (b *MemoryBlob) Save(snap Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSave != nil {
		return b.FailSave
	}
	b.snap = snap
	b.set = true
	return nil
}

func (b *MemoryBlob) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = Session{}
	b.set = false
	return nil
}
