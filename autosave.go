package autosave

import (
	_ "embed"
	"log/slog"

	"github.com/aretw0/autosave/internal/platform"
	"github.com/aretw0/autosave/pkg/core"
	"github.com/aretw0/autosave/pkg/settings"
)

// Version is the release of the module.
//
//go:embed VERSION
var Version string

// --- Configuration ---

// Option defines a functional option for configuring autosave.
type Option = platform.Option

// WithSaver sets the action that persists documents.
func WithSaver(s core.Saver) Option {
	return platform.WithSaver(s)
}

// WithSink sets the destination of the user-facing log lines.
func WithSink(s core.Sink) Option {
	return platform.WithSink(s)
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRecorder registers a decision observer.
func WithRecorder(r core.Recorder) Option {
	return platform.WithRecorder(r)
}

// WithSettingsFile loads settings from path.
func WithSettingsFile(path string) Option {
	return platform.WithSettingsFile(path)
}

// WithSettingsSearch looks for .autosave.{yaml,yml,toml,json} from dir upwards.
func WithSettingsSearch(dir string) Option {
	return platform.WithSettingsSearch(dir)
}

// --- Factory ---

// New creates an engine and its settings store.
func New(opts ...Option) (*core.Engine, *settings.Store, error) {
	return platform.New(opts...)
}

// NewEngine creates an engine without loading settings.
func NewEngine(opts ...Option) *core.Engine {
	return platform.NewEngine(opts...)
}

// FindSettings looks for a settings file from dir upwards.
func FindSettings(dir string) (string, error) {
	return platform.FindSettings(dir)
}
