package core

import (
	"github.com/aretw0/introspection"
)

// EngineState exposes internal state for observability.
type EngineState struct {
	Decisions int64  `json:"decisions"`
	Saves     int64  `json:"saves"`
	Failures  int64  `json:"failures"`
	Sweeps    int64  `json:"sweeps"`
	HasSaver  bool   `json:"has_saver"`
	HasSink   bool   `json:"has_sink"`
	SaverType string `json:"saver_type"`
}

// State implements introspection.Introspectable.
func (e *Engine) State() any {
	saverType := "none"
	if e.saver != nil {
		saverType = "saver"
		if comp, ok := e.saver.(introspection.Component); ok {
			saverType = comp.ComponentType()
		}
	}

	return EngineState{
		Decisions: e.decisions.Load(),
		Saves:     e.saves.Load(),
		Failures:  e.failures.Load(),
		Sweeps:    e.sweeps.Load(),
		HasSaver:  e.saver != nil,
		HasSink:   e.sink != nil,
		SaverType: saverType,
	}
}

// ComponentType implements introspection.Component.
func (e *Engine) ComponentType() string {
	return "engine"
}

var _ introspection.Introspectable = (*Engine)(nil)
var _ introspection.Component = (*Engine)(nil)
