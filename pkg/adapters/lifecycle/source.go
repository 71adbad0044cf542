// Package lifecycle bridges document change notifications into the generic
// lifecycle event runtime, so an application loop can consume folder edits
// alongside its other event sources.
package lifecycle

import (
	"context"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

type documentSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	once   sync.Once
}

// NewSource wraps a Watch channel as a lifecycle.Source. core.Event satisfies
// the lifecycle event contract through its String method.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &documentSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *documentSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start launches the bridge goroutine, tracked by lifecycle.Go. Calling Start
// again is a no-op; the bridge runs until the watch channel closes or ctx is
// done.
func (s *documentSource) Start(ctx context.Context) error {
	s.once.Do(func() {
		lifecycle.Go(ctx, s.bridge)
	})
	return nil
}

func (s *documentSource) bridge(ctx context.Context) error {
	defer close(s.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-s.events:
			if !ok {
				return nil
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
