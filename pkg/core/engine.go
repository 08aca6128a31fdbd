package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync/atomic"

	"github.com/google/uuid"
)

// Engine decides whether open documents should be saved and saves them.
//
// An Engine keeps no state between decisions apart from counters. It is not
// safe for concurrent use: the host must serialize calls, the same way it
// serializes every other operation on its documents.
type Engine struct {
	saver    Saver
	sink     Sink
	logger   *slog.Logger
	recorder Recorder

	decisions atomic.Int64
	saves     atomic.Int64
	failures  atomic.Int64
	sweeps    atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger. It is separate from the Sink, which
// receives the user-facing lines.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder registers an observer for every decision.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// NewEngine creates an Engine. A nil saver makes every save fail with
// ErrHostServiceUnavailable; a nil sink drops log lines.
func NewEngine(saver Saver, sink Sink, opts ...Option) *Engine {
	e := &Engine{
		saver:  saver,
		sink:   sink,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ShouldSave evaluates doc against cfg and saves it when no rule disqualifies it.
//
// Rules, first match wins: absent document, already saved, read-only,
// ignored pattern. ShouldSave never panics; a panicking collaborator yields a
// failed decision.
func (e *Engine) ShouldSave(ctx context.Context, doc Document, cfg Config) (d Decision) {
	e.decisions.Add(1)
	defer func() {
		if r := recover(); r != nil {
			d.Outcome = OutcomeFailed
			d.Err = fmt.Errorf("%w: %v", ErrCollaboratorPanic, r)
			e.logger.Error("decision panicked", "path", d.Path, "error", d.Err)
			e.log(fmt.Sprintf("failed to save %s: %v", d.Path, d.Err))
		}
		if d.Outcome == OutcomeFailed {
			e.failures.Add(1)
		}
		e.observe(d)
	}()

	e.decide(ctx, doc, cfg, &d)
	return d
}

func (e *Engine) decide(ctx context.Context, doc Document, cfg Config, d *Decision) {
	if isNil(doc) {
		d.Outcome = OutcomeMissing
		return
	}
	d.Path = doc.Path()

	if doc.IsSaved() {
		d.Outcome = OutcomeClean
		return
	}

	if doc.IsReadOnly() {
		d.Outcome = OutcomeReadOnly
		e.log(fmt.Sprintf("skipping read-only file %s", d.Path))
		return
	}

	if p, ok := cfg.match(d.Path, func(cerr *ConfigurationError) {
		e.logger.Warn("ignoring invalid pattern", "pattern", cerr.Pattern, "error", cerr.Err)
		e.log(cerr.Error())
	}); ok {
		d.Outcome = OutcomeIgnored
		d.Pattern = p
		e.logger.Debug("path ignored", "path", d.Path, "pattern", p)
		return
	}

	if e.saver == nil {
		d.Outcome = OutcomeFailed
		d.Err = ErrHostServiceUnavailable
		e.logger.Error("no save action available", "path", d.Path)
		return
	}

	e.log(fmt.Sprintf("saving %s", d.Path))
	if err := e.saver.Save(ctx, doc); err != nil {
		d.Outcome = OutcomeFailed
		d.Err = fmt.Errorf("%w: %w", ErrSaveFailed, err)
		e.logger.Error("save failed", "path", d.Path, "error", err)
		e.log(fmt.Sprintf("failed to save %s: %v", d.Path, err))
		return
	}
	d.Outcome = OutcomeSaved
	e.saves.Add(1)
}

// OnFocusTransferred saves the surface being left. gaining is never inspected.
func (e *Engine) OnFocusTransferred(ctx context.Context, losing, gaining Document, cfg Config) Decision {
	return e.ShouldSave(ctx, losing, cfg)
}

// OnHostLostFocus evaluates every surface once, in order, when the sweep is
// enabled. It returns nil when cfg disables the sweep.
func (e *Engine) OnHostLostFocus(ctx context.Context, surfaces []Document, cfg Config) []Decision {
	if !cfg.SaveOnAppDeactivate() {
		return nil
	}
	e.sweeps.Add(1)

	logger := e.logger.With("sweep", uuid.NewString())
	logger.Debug("sweep started", "surfaces", len(surfaces))

	decisions := make([]Decision, 0, len(surfaces))
	for _, doc := range surfaces {
		d := e.ShouldSave(ctx, doc, cfg)
		if d.Failed() {
			logger.Warn("surface not saved", "path", d.Path, "error", d.Err)
		}
		decisions = append(decisions, d)
	}

	logger.Debug("sweep finished", "surfaces", len(surfaces))
	return decisions
}

// Handle dispatches a host event. Unknown events produce no decisions.
func (e *Engine) Handle(ctx context.Context, ev Event, cfg Config) []Decision {
	switch ev := ev.(type) {
	case FocusTransferred:
		return []Decision{e.OnFocusTransferred(ctx, ev.Losing, ev.Gaining, cfg)}
	case *FocusTransferred:
		if ev == nil {
			return nil
		}
		return []Decision{e.OnFocusTransferred(ctx, ev.Losing, ev.Gaining, cfg)}
	case HostLostFocus:
		return e.OnHostLostFocus(ctx, ev.Surfaces, cfg)
	case *HostLostFocus:
		if ev == nil {
			return nil
		}
		return e.OnHostLostFocus(ctx, ev.Surfaces, cfg)
	default:
		e.logger.Debug("unhandled event", "event", fmt.Sprintf("%T", ev))
		return nil
	}
}

// Run consumes src until its channel closes or ctx is cancelled. Each event
// is handled against a fresh snapshot from cfg. Decisions are forwarded to
// out when it is not nil; Run never closes out.
func (e *Engine) Run(ctx context.Context, src EventSource, cfg ConfigProvider, out chan<- Decision) error {
	if src == nil || cfg == nil {
		return ErrHostServiceUnavailable
	}
	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			for _, d := range e.Handle(ctx, ev, cfg.Snapshot()) {
				if out == nil {
					continue
				}
				select {
				case out <- d:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

func (e *Engine) log(msg string) {
	if e.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("log sink panicked", "error", r)
		}
	}()
	e.sink.Log(msg)
}

func (e *Engine) observe(d Decision) {
	if e.recorder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("recorder panicked", "error", r)
		}
	}()
	e.recorder.Observe(d)
}

// isNil also catches typed nil pointers stored in the interface.
func isNil(doc Document) bool {
	if doc == nil {
		return true
	}
	v := reflect.ValueOf(doc)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
