package core

import (
	"context"
	"log/slog"
)

// Saver persists a document. Implementations must be idempotent: saving a
// clean document is a no-op.
type Saver interface {
	Save(ctx context.Context, doc Document) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, doc Document) error

func (f SaverFunc) Save(ctx context.Context, doc Document) error {
	return f(ctx, doc)
}

// Sink receives the user-facing log lines of the engine (the host's output pane).
// Log is fire-and-forget.
type Sink interface {
	Log(msg string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(msg string)

func (f SinkFunc) Log(msg string) { f(msg) }

// SlogSink writes sink lines to a structured logger at Info level.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink creates a Sink backed by logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{Logger: logger}
}

func (s *SlogSink) Log(msg string) {
	if s == nil || s.Logger == nil {
		return
	}
	s.Logger.Info(msg)
}

// EventSource emits host notifications. The channel is closed when the host
// goes away.
type EventSource interface {
	Events() <-chan Event
}

// ConfigProvider hands out a consistent configuration snapshot.
type ConfigProvider interface {
	Snapshot() Config
}

// StaticConfig is a ConfigProvider that always returns the same snapshot.
type StaticConfig Config

func (c StaticConfig) Snapshot() Config { return Config(c) }

// Recorder observes every decision the engine makes.
type Recorder interface {
	Observe(d Decision)
}
