package fs_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

func collectEvent(t *testing.T, events <-chan core.Event, timeout time.Duration) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed before an event arrived")
		return e
	case <-time.After(timeout):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestWatch(t *testing.T) {
	t.Run("Sees Another User's Save", func(t *testing.T) {
		store, root := setupStore(t)
		require.NoError(t, os.MkdirAll(root, 0755))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := store.Watch(ctx, "sections-*.json")
		require.NoError(t, err)

		_, err = store.Write(ctx, "sections-2026-Fall.json", []any{"CS101"}, 0)
		require.NoError(t, err)

		e := collectEvent(t, events, 5*time.Second)
		require.Equal(t, "sections-2026-Fall.json", e.Name)
		require.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	})

	t.Run("Pattern Filters Events", func(t *testing.T) {
		store, root := setupStore(t)
		require.NoError(t, os.MkdirAll(root, 0755))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := store.Watch(ctx, "sections-*.json")
		require.NoError(t, err)

		_, err = store.Write(ctx, "instructors.json", []any{}, 0)
		require.NoError(t, err)
		_, err = store.Write(ctx, "sections-2026-Fall.json", []any{}, 0)
		require.NoError(t, err)

		e := collectEvent(t, events, 5*time.Second)
		require.Equal(t, "sections-2026-Fall.json", e.Name)
	})

	t.Run("Cancel Closes The Channel", func(t *testing.T) {
		store, root := setupStore(t)
		require.NoError(t, os.MkdirAll(root, 0755))

		ctx, cancel := context.WithCancel(context.Background())
		events, err := store.Watch(ctx, "*.json")
		require.NoError(t, err)

		cancel()

		select {
		case _, ok := <-events:
			require.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("events channel not closed after cancel")
		}
	})
}
