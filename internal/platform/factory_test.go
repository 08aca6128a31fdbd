package platform

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autosave/pkg/core"
	"github.com/aretw0/autosave/pkg/settings"
)

type dirtyDoc string

func (d dirtyDoc) Path() string     { return string(d) }
func (d dirtyDoc) IsSaved() bool    { return false }
func (d dirtyDoc) IsReadOnly() bool { return false }

func TestNew_DiscoversSettings(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".autosave.yaml"), []byte("ignored_file_types: .log\nuse_regex: false\n"), 0644))

	var saved []string
	saver := core.SaverFunc(func(_ context.Context, d core.Document) error {
		saved = append(saved, d.Path())
		return nil
	})

	engine, store, err := New(WithSaver(saver), WithSettingsSearch(dir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".autosave.yaml"), store.Path())

	cfg := store.Snapshot()
	assert.Equal(t, core.OutcomeIgnored, engine.ShouldSave(context.Background(), dirtyDoc("x.log"), cfg).Outcome)
	assert.True(t, engine.ShouldSave(context.Background(), dirtyDoc("x.go"), cfg).Saved())
	assert.Equal(t, []string{"x.go"}, saved)
}

func TestNew_FallsBackToDefaults(t *testing.T) {
	_, store, err := New(WithSettingsSearch(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), store.Settings())
}

func TestNew_BadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.ini")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, _, err := New(WithSettingsFile(path))
	assert.ErrorIs(t, err, settings.ErrUnsupportedFormat)
}

func TestNewEngine_LoggerIsDefaultSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	engine := NewEngine(WithLogger(logger), WithSaver(core.SaverFunc(func(context.Context, core.Document) error { return nil })))
	engine.ShouldSave(context.Background(), dirtyDoc("a.txt"), core.Config{})

	assert.Contains(t, buf.String(), "saving a.txt")

	state := engine.State().(core.EngineState)
	assert.True(t, state.HasSink)
}
