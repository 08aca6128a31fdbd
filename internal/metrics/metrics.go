// Package metrics records engine decisions as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/autosave/pkg/core"
)

// Metrics implements core.Recorder.
//
// Metrics:
//   - autosave_decisions_total{outcome} - decisions by outcome
//   - autosave_save_failures_total - saves that were attempted or required and did not happen
type Metrics struct {
	Decisions    *prometheus.CounterVec
	SaveFailures prometheus.Counter
}

// New registers the metrics on reg. Use a fresh registry per engine.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autosave_decisions_total",
				Help: "Total number of auto-save decisions by outcome",
			},
			[]string{"outcome"},
		),
		SaveFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "autosave_save_failures_total",
				Help: "Total number of documents that could not be saved",
			},
		),
	}
}

// Observe implements core.Recorder.
func (m *Metrics) Observe(d core.Decision) {
	m.Decisions.WithLabelValues(string(d.Outcome)).Inc()
	if d.Failed() {
		m.SaveFailures.Inc()
	}
}

var _ core.Recorder = (*Metrics)(nil)
