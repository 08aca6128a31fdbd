package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/autosave/pkg/adapters/fs"
	"github.com/aretw0/autosave/pkg/core"
)

const maxLineSize = 16 << 20

// Host is the editor on the other end of a pair of streams. It is the
// engine's EventSource, Saver and Sink at once.
type Host struct {
	in     io.Reader
	logger *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder

	events chan core.Event
}

// NewHost creates a host reading requests from r and writing replies to w.
func NewHost(r io.Reader, w io.Writer, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Host{
		in:     r,
		logger: logger,
		enc:    json.NewEncoder(w),
		events: make(chan core.Event),
	}
}

// Events implements core.EventSource. The channel closes at end of input.
func (h *Host) Events() <-chan core.Event {
	return h.events
}

// Start begins reading requests in the background.
func (h *Host) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(h.events)
		return h.read(ctx)
	}, lifecycle.WithErrorHandler(func(err error) {
		h.logger.Error("stdio reader failed", "error", err)
	}))
	return nil
}

func (h *Host) read(ctx context.Context) error {
	scanner := bufio.NewScanner(h.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reject(line, fmt.Errorf("malformed message: %w", err))
			continue
		}
		ev, err := msg.Event()
		if err != nil {
			h.reject(line, err)
			continue
		}

		h.logger.Debug("event received", "event", ev.String())
		select {
		case h.events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

func (h *Host) reject(line int, err error) {
	h.logger.Warn("request rejected", "line", line, "error", err)
	_ = h.send(Message{Type: MsgError, Error: fmt.Sprintf("line %d: %v", line, err)})
}

func (h *Host) send(m Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enc.Encode(m)
}

// Log implements core.Sink.
func (h *Host) Log(msg string) {
	if err := h.send(Message{Type: MsgLog, Message: msg}); err != nil {
		h.logger.Debug("log line dropped", "error", err)
	}
}

// Save implements core.Saver. Buffers carrying content are written here;
// anything else is handed back to the editor as a save request.
func (h *Host) Save(ctx context.Context, doc core.Document) error {
	if b, ok := doc.(*fs.Buffer); ok {
		if err := b.Save(); err != nil {
			return err
		}
		if err := h.send(Message{Type: MsgSaved, Path: b.Path()}); err != nil {
			h.logger.Debug("saved notification dropped", "error", err)
		}
		return nil
	}

	if err := h.send(Message{Type: MsgSave, Path: doc.Path()}); err != nil {
		return fmt.Errorf("%w: %w", core.ErrHostServiceUnavailable, err)
	}
	return nil
}

// Report sends a decision to the editor.
func (h *Host) Report(d core.Decision) error {
	return h.send(DecisionMessage(d))
}

var (
	_ core.EventSource = (*Host)(nil)
	_ core.Saver       = (*Host)(nil)
	_ core.Sink        = (*Host)(nil)
)
