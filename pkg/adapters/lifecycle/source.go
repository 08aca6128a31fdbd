// Package lifecycle bridges engine decisions to the lifecycle event model.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/autosave/pkg/core"
)

type decisionSource struct {
	decisions <-chan core.Decision
	out       chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits engine decisions.
// The output channel closes when decisions closes or the context ends.
func NewSource(decisions <-chan core.Decision) lifecycle.Source {
	return &decisionSource{
		decisions: decisions,
		out:       make(chan lifecycle.Event),
	}
}

func (s *decisionSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *decisionSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case d, ok := <-s.decisions:
				if !ok {
					return nil
				}
				// core.Decision implements lifecycle.Event (has String())
				select {
				case s.out <- d:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
