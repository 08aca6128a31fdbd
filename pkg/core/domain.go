// Package core holds the save-decision engine and the narrow interfaces it
// uses to talk to an editor host.
package core

import (
	"fmt"
	"strings"
)

// Document is an open editable unit owned by the host.
// A nil Document means the surface has no document attached.
type Document interface {
	Path() string
	IsSaved() bool
	IsReadOnly() bool
}

// Outcome classifies a single decision.
type Outcome string

const (
	OutcomeMissing  Outcome = "missing"
	OutcomeClean    Outcome = "clean"
	OutcomeReadOnly Outcome = "read-only"
	OutcomeIgnored  Outcome = "ignored"
	OutcomeSaved    Outcome = "saved"
	OutcomeFailed   Outcome = "failed"
)

// Decision is the transient result of evaluating one document.
type Decision struct {
	Path    string
	Outcome Outcome
	// Pattern is the ignored pattern that disqualified the document.
	Pattern string
	Err     error
}

// Saved reports whether the document was persisted by this decision.
func (d Decision) Saved() bool {
	return d.Outcome == OutcomeSaved
}

// Failed reports whether a save was attempted (or required) and did not happen.
func (d Decision) Failed() bool {
	return d.Outcome == OutcomeFailed
}

func (d Decision) String() string {
	var b strings.Builder
	b.WriteString(string(d.Outcome))
	if d.Path != "" {
		fmt.Fprintf(&b, " %s", d.Path)
	}
	if d.Pattern != "" {
		fmt.Fprintf(&b, " (pattern %q)", d.Pattern)
	}
	if d.Err != nil {
		fmt.Fprintf(&b, ": %v", d.Err)
	}
	return b.String()
}

// EventType names the notifications an EventSource can emit.
type EventType string

const (
	EventFocusTransferred EventType = "FOCUS_TRANSFERRED"
	EventHostLostFocus    EventType = "HOST_LOST_FOCUS"
)

// Event is a notification from the host.
type Event interface {
	Type() EventType
	String() string
}

// FocusTransferred is emitted when one editor surface loses focus to another.
type FocusTransferred struct {
	Losing  Document
	Gaining Document
}

func (FocusTransferred) Type() EventType { return EventFocusTransferred }

func (e FocusTransferred) String() string {
	return fmt.Sprintf("%s losing=%s", EventFocusTransferred, pathOf(e.Losing))
}

// HostLostFocus is emitted when the whole host application loses focus.
// Surfaces is a snapshot of the open surfaces, in host order; entries may be nil.
type HostLostFocus struct {
	Surfaces []Document
}

func (HostLostFocus) Type() EventType { return EventHostLostFocus }

func (e HostLostFocus) String() string {
	return fmt.Sprintf("%s surfaces=%d", EventHostLostFocus, len(e.Surfaces))
}

func pathOf(doc Document) string {
	if doc == nil {
		return "<none>"
	}
	return doc.Path()
}
