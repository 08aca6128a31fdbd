// Package stdio drives the engine from an editor over line-delimited JSON.
//
// Requests (editor to autosave):
//
//	{"type":"focus_transferred","losing":{"path":"/a.go","saved":false},"gaining":{"path":"/b.go"}}
//	{"type":"host_lost_focus","surfaces":[{"path":"/a.go"},null,{"path":"/c.md","read_only":true}]}
//
// A document may carry "content"; autosave then writes the file itself and
// answers {"type":"saved"}. Without content it asks the editor to save with
// {"type":"save","path":...}. Log lines arrive as {"type":"log","message":...}.
package stdio

import (
	"fmt"

	"github.com/aretw0/autosave/pkg/adapters/fs"
	"github.com/aretw0/autosave/pkg/core"
)

// MessageType tags every line of the protocol.
type MessageType string

const (
	MsgFocusTransferred MessageType = "focus_transferred"
	MsgHostLostFocus    MessageType = "host_lost_focus"
	MsgLog              MessageType = "log"
	MsgSave             MessageType = "save"
	MsgSaved            MessageType = "saved"
	MsgDecision         MessageType = "decision"
	MsgError            MessageType = "error"
)

// DocumentPayload describes one open document.
type DocumentPayload struct {
	Path     string  `json:"path"`
	Saved    bool    `json:"saved,omitempty"`
	ReadOnly bool    `json:"read_only,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// Message is one protocol line in either direction.
type Message struct {
	Type     MessageType        `json:"type"`
	Losing   *DocumentPayload   `json:"losing,omitempty"`
	Gaining  *DocumentPayload   `json:"gaining,omitempty"`
	Surfaces []*DocumentPayload `json:"surfaces,omitempty"`
	Message  string             `json:"message,omitempty"`
	Path     string             `json:"path,omitempty"`
	Outcome  core.Outcome       `json:"outcome,omitempty"`
	Pattern  string             `json:"pattern,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// remoteDoc is a document the editor persists itself.
type remoteDoc struct {
	path     string
	saved    bool
	readOnly bool
}

func (d *remoteDoc) Path() string     { return d.path }
func (d *remoteDoc) IsSaved() bool    { return d.saved }
func (d *remoteDoc) IsReadOnly() bool { return d.readOnly }

// Document converts a payload. A nil payload is an absent document and yields
// a nil interface.
func (p *DocumentPayload) Document() core.Document {
	if p == nil {
		return nil
	}
	if p.Content != nil && !p.Saved {
		b := fs.NewBuffer(p.Path, []byte(*p.Content))
		b.SetReadOnly(p.ReadOnly)
		return b
	}
	return &remoteDoc{path: p.Path, saved: p.Saved, readOnly: p.ReadOnly}
}

// Event converts a request into an engine event.
func (m Message) Event() (core.Event, error) {
	switch m.Type {
	case MsgFocusTransferred:
		return core.FocusTransferred{
			Losing:  m.Losing.Document(),
			Gaining: m.Gaining.Document(),
		}, nil
	case MsgHostLostFocus:
		surfaces := make([]core.Document, 0, len(m.Surfaces))
		for _, p := range m.Surfaces {
			surfaces = append(surfaces, p.Document())
		}
		return core.HostLostFocus{Surfaces: surfaces}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// DecisionMessage renders a decision for the editor.
func DecisionMessage(d core.Decision) Message {
	m := Message{
		Type:    MsgDecision,
		Path:    d.Path,
		Outcome: d.Outcome,
		Pattern: d.Pattern,
	}
	if d.Err != nil {
		m.Error = d.Err.Error()
	}
	return m
}
