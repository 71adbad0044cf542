package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	doclifecycle "github.com/gschlitt/course-schedule-visualizer/pkg/adapters/lifecycle"
	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

func TestSourceBridgesEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	source := doclifecycle.NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, source.Start(ctx))
	// Starting twice must not spawn a second bridge.
	require.NoError(t, source.Start(ctx))

	in <- core.Event{Type: core.EventModify, Name: "sections-2026-Fall.json"}

	select {
	case e := <-source.Events():
		require.Contains(t, e.String(), "sections-2026-Fall.json")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for bridged event")
	}

	// Closing the watch channel shuts the bridge down.
	close(in)
	select {
	case _, ok := <-source.Events():
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("bridge did not close after input channel closed")
	}
}
