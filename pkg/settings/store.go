package settings

import (
	"sync/atomic"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/autosave/pkg/core"
)

// Store holds the current settings. Readers get a complete snapshot; a
// reload swaps the whole snapshot at once.
type Store struct {
	path    string
	current atomic.Pointer[snapshot]
	reloads atomic.Int64
}

type snapshot struct {
	settings Settings
	config   core.Config
	loadedAt time.Time
}

// NewStore creates a Store holding s. path is remembered for Reload and may be empty.
func NewStore(path string, s Settings) *Store {
	st := &Store{path: path}
	st.Update(s)
	return st
}

// Open loads path into a new Store. An empty path yields the defaults.
func Open(path string) (*Store, error) {
	if path == "" {
		return NewStore("", Default()), nil
	}
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewStore(path, s), nil
}

// Path returns the backing file, if any.
func (st *Store) Path() string {
	return st.path
}

// Snapshot implements core.ConfigProvider.
func (st *Store) Snapshot() core.Config {
	return st.current.Load().config
}

// Settings returns the settings behind the current snapshot.
func (st *Store) Settings() Settings {
	return st.current.Load().settings
}

// Update replaces the current snapshot.
func (st *Store) Update(s Settings) {
	st.current.Store(&snapshot{
		settings: s,
		config:   s.Config(),
		loadedAt: time.Now(),
	})
}

// Reload re-reads the backing file. On error the previous snapshot is kept.
func (st *Store) Reload() (Settings, error) {
	if st.path == "" {
		return st.Settings(), nil
	}
	s, err := Load(st.path)
	if err != nil {
		return st.Settings(), err
	}
	st.Update(s)
	st.reloads.Add(1)
	return s, nil
}

// StoreState exposes internal state for observability.
type StoreState struct {
	Path            string    `json:"path,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
	Reloads         int64     `json:"reloads"`
	Patterns        []string  `json:"patterns"`
	InvalidPatterns []string  `json:"invalid_patterns,omitempty"`
	UseRegex        bool      `json:"use_regex"`
	SweepEnabled    bool      `json:"sweep_enabled"`
}

// State implements introspection.Introspectable.
func (st *Store) State() any {
	snap := st.current.Load()

	var invalid []string
	for _, e := range snap.config.Invalid() {
		invalid = append(invalid, e.Pattern)
	}

	return StoreState{
		Path:            st.path,
		LoadedAt:        snap.loadedAt,
		Reloads:         st.reloads.Load(),
		Patterns:        snap.config.Patterns(),
		InvalidPatterns: invalid,
		UseRegex:        snap.config.UseRegex(),
		SweepEnabled:    snap.config.SaveOnAppDeactivate(),
	}
}

// ComponentType implements introspection.Component.
func (st *Store) ComponentType() string {
	return "settings"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ core.ConfigProvider = (*Store)(nil)
