package platform

import (
	"log/slog"

	"github.com/aretw0/autosave/pkg/core"
)

// options holds the internal configuration for building an engine.
type options struct {
	saver        core.Saver
	sink         core.Sink
	logger       *slog.Logger
	recorder     core.Recorder
	settingsPath string
	searchFrom   string
}

// Option defines a functional option for configuring autosave.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithSaver sets the action that persists documents.
func WithSaver(s core.Saver) Option {
	return func(o *options) {
		o.saver = s
	}
}

// WithSink sets the destination of the user-facing log lines.
// Without a sink, lines go to the logger at Info level (when a logger is set).
func WithSink(s core.Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder registers a decision observer (e.g. metrics).
func WithRecorder(r core.Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithSettingsFile loads settings from an explicit file.
func WithSettingsFile(path string) Option {
	return func(o *options) {
		o.settingsPath = path
	}
}

// WithSettingsSearch looks for a settings file from dir upwards when no
// explicit file is given.
func WithSettingsSearch(dir string) Option {
	return func(o *options) {
		o.searchFrom = dir
	}
}
