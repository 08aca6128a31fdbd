// Package fs is a filesystem-backed editor host: open documents are in-memory
// buffers over files, and saving writes a buffer back atomically.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/autosave/pkg/core"
)

// Common errors.
var (
	ErrReadOnly        = errors.New("buffer is read-only")
	ErrUnknownDocument = errors.New("document is not open in this workspace")
)

const defaultPerm os.FileMode = 0644

// Buffer is an open document: the file path plus the in-memory content the
// user is editing.
type Buffer struct {
	mu       sync.RWMutex
	path     string
	content  []byte
	perm     os.FileMode
	saved    bool
	readOnly bool
	saves    int
}

// NewBuffer creates an unsaved buffer for path holding content.
func NewBuffer(path string, content []byte) *Buffer {
	return &Buffer{
		path:    path,
		content: append([]byte(nil), content...),
		perm:    defaultPerm,
	}
}

// Open loads path into a clean buffer. A file without any write permission
// bit opens read-only.
func Open(path string) (*Buffer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}
	return &Buffer{
		path:     abs,
		content:  data,
		perm:     info.Mode().Perm(),
		saved:    true,
		readOnly: info.Mode().Perm()&0222 == 0,
	}, nil
}

func (b *Buffer) Path() string {
	return b.path
}

func (b *Buffer) IsSaved() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saved
}

func (b *Buffer) IsReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// Content returns a copy of the current content.
func (b *Buffer) Content() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.content...)
}

// Edit replaces the content and marks the buffer dirty.
func (b *Buffer) Edit(content []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = append([]byte(nil), content...)
	b.saved = false
}

// MarkDirty flags the buffer as modified without touching its content.
func (b *Buffer) MarkDirty() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saved = false
}

// SetReadOnly toggles the read-only flag.
func (b *Buffer) SetReadOnly(readOnly bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = readOnly
}

// Saves returns how many times the buffer was written to disk.
func (b *Buffer) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}

// Save writes the buffer to its path. Saving a clean buffer does nothing.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.saved {
		return nil
	}
	if b.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, b.path)
	}
	if err := writeFileAtomic(b.path, b.content, b.perm); err != nil {
		return err
	}
	b.saved = true
	b.saves++
	return nil
}

var _ core.Document = (*Buffer)(nil)
