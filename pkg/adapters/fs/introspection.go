package fs

import (
	"github.com/aretw0/introspection"
)

// WorkspaceState exposes internal state for observability.
type WorkspaceState struct {
	Open     int      `json:"open"`
	Dirty    []string `json:"dirty,omitempty"`
	ReadOnly []string `json:"read_only,omitempty"`
	Saves    int64    `json:"saves"`
}

// State implements introspection.Introspectable.
func (w *Workspace) State() any {
	w.mu.RLock()
	defer w.mu.RUnlock()

	state := WorkspaceState{
		Open:  len(w.order),
		Saves: w.saves.Load(),
	}
	for _, k := range w.order {
		b := w.buffers[k]
		if !b.IsSaved() {
			state.Dirty = append(state.Dirty, b.Path())
		}
		if b.IsReadOnly() {
			state.ReadOnly = append(state.ReadOnly, b.Path())
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (w *Workspace) ComponentType() string {
	return "fs-workspace"
}

var _ introspection.Introspectable = (*Workspace)(nil)
var _ introspection.Component = (*Workspace)(nil)
