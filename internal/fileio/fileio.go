// Package fileio provides whole-file read and write backends.
package fileio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// OS reads and writes the local file system.
type OS struct{}

// ReadFile reads the named file.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path with 0644 permissions, creating parent
// directories as needed.
func (OS) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Memory is an in-memory file system.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty Memory file system.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// ReadFile returns a copy of the stored content.
func (m *Memory) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteFile stores a copy of data.
func (m *Memory) WriteFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("write file: empty path")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[filepath.Clean(path)] = stored
	return nil
}

// Exists reports whether path has been written.
func (m *Memory) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}
