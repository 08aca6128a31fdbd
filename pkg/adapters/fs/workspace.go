package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/aretw0/autosave/pkg/core"
)

// Workspace is the ordered set of open buffers. Its order is the surface
// order handed to the engine on a sweep.
type Workspace struct {
	mu      sync.RWMutex
	order   []string
	buffers map[string]*Buffer
	logger  *slog.Logger
	saves   atomic.Int64
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Workspace{
		buffers: make(map[string]*Buffer),
		logger:  logger,
	}
}

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Open loads path into the workspace, or returns the buffer already open for it.
func (w *Workspace) Open(path string) (*Buffer, error) {
	if b, ok := w.Get(path); ok {
		return b, nil
	}
	b, err := Open(path)
	if err != nil {
		return nil, err
	}
	w.Add(b)
	return b, nil
}

// Add registers b, replacing any buffer open for the same path.
func (w *Workspace) Add(b *Buffer) {
	w.mu.Lock()
	defer w.mu.Unlock()

	k := key(b.Path())
	if _, ok := w.buffers[k]; !ok {
		w.order = append(w.order, k)
	}
	w.buffers[k] = b
}

// Get returns the buffer open for path.
func (w *Workspace) Get(path string) (*Buffer, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.buffers[key(path)]
	return b, ok
}

// Close drops the buffer for path without saving it.
func (w *Workspace) Close(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	k := key(path)
	if _, ok := w.buffers[k]; !ok {
		return
	}
	delete(w.buffers, k)
	for i, p := range w.order {
		if p == k {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Surfaces returns a snapshot of the open buffers in open order.
func (w *Workspace) Surfaces() []core.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()

	docs := make([]core.Document, 0, len(w.order))
	for _, k := range w.order {
		docs = append(docs, w.buffers[k])
	}
	return docs
}

// Save implements core.Saver for buffers of this workspace.
func (w *Workspace) Save(ctx context.Context, doc core.Document) error {
	b, ok := doc.(*Buffer)
	if !ok || b == nil {
		if b, ok = w.Get(doc.Path()); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownDocument, doc.Path())
		}
	}
	if err := b.Save(); err != nil {
		return err
	}
	w.saves.Add(1)
	w.logger.Debug("buffer written", "path", b.Path())
	return nil
}

var _ core.Saver = (*Workspace)(nil)
