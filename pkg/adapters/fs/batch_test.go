package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

func TestCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("All Entries Land With Versions", func(t *testing.T) {
		store, _ := setupStore(t)

		versions, err := store.Commit(ctx, []core.BatchEntry{
			{Name: "sections-2026-Fall.json", Content: []any{"CS101"}},
			{Name: "instructor-lovelace.json", Content: map[string]any{"2026-Fall": []any{}}},
			{Name: "course-cs101.json", Content: map[string]any{"2026-Fall": []any{}}},
		})
		require.NoError(t, err)
		require.Len(t, versions, 3)

		for name, version := range versions {
			doc, found, err := store.Read(ctx, name)
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, version, doc.Version)
		}
	})

	t.Run("Empty Batch Is A No-Op", func(t *testing.T) {
		store, _ := setupStore(t)

		versions, err := store.Commit(ctx, nil)
		require.NoError(t, err)
		require.Empty(t, versions)
	})

	t.Run("Staging Failure Rolls Back Everything", func(t *testing.T) {
		store, root := setupStore(t)

		_, err := store.Write(ctx, "a.json", "before", 0)
		require.NoError(t, err)

		// The middle entry cannot be staged: its parent folder does not exist.
		_, err = store.Commit(ctx, []core.BatchEntry{
			{Name: "a.json", Content: "after"},
			{Name: "missing-dir/b.json", Content: "x"},
			{Name: "c.json", Content: "x"},
		})
		require.Error(t, err)

		// The existing document is untouched and no new ones appeared.
		doc, _, err := store.Read(ctx, "a.json")
		require.NoError(t, err)
		require.Equal(t, "before", doc.Content)

		_, found, err := store.Read(ctx, "c.json")
		require.NoError(t, err)
		require.False(t, found)

		// No staging leftovers either.
		matches, err := filepath.Glob(filepath.Join(root, "*.tmp"))
		require.NoError(t, err)
		require.Empty(t, matches)
	})

	t.Run("Precondition Failure Stages Nothing", func(t *testing.T) {
		store, _ := setupStore(t)

		res, err := store.Write(ctx, "a.json", "theirs", 0)
		require.NoError(t, err)

		_, err = store.Commit(ctx, []core.BatchEntry{
			{Name: "a.json", Content: "mine", Expected: res.Version - 1000},
			{Name: "b.json", Content: "x"},
		})
		require.Error(t, err)
		require.ErrorIs(t, err, core.ErrConflict)

		var conflict *core.ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Equal(t, "a.json", conflict.Name)
		require.Equal(t, res.Version, conflict.Stored)
		require.True(t, conflict.TheirsOK)
		require.Equal(t, "theirs", conflict.Theirs)

		// The batch never started: the clean entry was not written.
		_, found, err := store.Read(ctx, "b.json")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("Rename Failure Reports Applied And Pending", func(t *testing.T) {
		store, root := setupStore(t)

		_, err := store.Write(ctx, "a.json", "seed", 0)
		require.NoError(t, err)

		// A directory squatting on the final path makes the rename fail
		// after earlier entries already landed.
		require.NoError(t, os.Mkdir(filepath.Join(root, "blocked.json"), 0755))

		_, err = store.Commit(ctx, []core.BatchEntry{
			{Name: "a.json", Content: "updated"},
			{Name: "blocked.json", Content: "x"},
			{Name: "c.json", Content: "x"},
		})
		require.Error(t, err)

		var partial *core.PartialCommitError
		require.ErrorAs(t, err, &partial)
		require.Equal(t, []string{"a.json"}, partial.Applied)
		require.Equal(t, []string{"blocked.json", "c.json"}, partial.Pending)

		// The applied entry really is on disk; the pending ones are not.
		doc, _, err := store.Read(ctx, "a.json")
		require.NoError(t, err)
		require.Equal(t, "updated", doc.Content)

		_, found, err := store.Read(ctx, "c.json")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("Tolerance Applies To Batch Preconditions", func(t *testing.T) {
		store, root := setupStore(t)

		res, err := store.Write(ctx, "a.json", "v1", 0)
		require.NoError(t, err)

		// Nudge the mtime a few milliseconds: cloud sync clients do this.
		path := filepath.Join(root, "a.json")
		nudged := time.UnixMilli(res.Version).Add(10 * time.Millisecond)
		require.NoError(t, os.Chtimes(path, nudged, nudged))

		versions, err := store.Commit(ctx, []core.BatchEntry{
			{Name: "a.json", Content: "v2", Expected: res.Version},
		})
		require.NoError(t, err)
		require.Contains(t, versions, "a.json")
	})
}
