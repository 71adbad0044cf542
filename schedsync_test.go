package schedsync_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	schedsync "github.com/gschlitt/course-schedule-visualizer"
	"github.com/gschlitt/course-schedule-visualizer/pkg/schedule"
)

func TestOpenDegraded(t *testing.T) {
	c := schedsync.Open("")
	defer c.Close(context.Background())

	require.False(t, c.Configured())

	content, version, err := c.Load(context.Background(), schedule.SettingsDocument, map[string]any{"title": ""})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": ""}, content)
	require.Equal(t, int64(0), version)
}

func TestOpenRoundTrip(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "shared")
	ctx := context.Background()

	c := schedsync.Open(folder)
	defer c.Close(ctx)
	require.True(t, c.Configured())

	term := schedule.Term{Year: 2026, Semester: "Fall"}
	name := schedule.SectionsDocument(term)

	c.Save(name, []any{
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	}, schedule.NewUpdater(term).Derive)
	require.NoError(t, c.Flush(ctx))
	require.Equal(t, schedsync.StateClean, c.State())

	// A second client on the same folder sees the sections and the ledgers
	// derived from them.
	other := schedsync.Open(folder)
	defer other.Close(ctx)

	entries, version, err := schedsync.LoadAs(ctx, other, name, []schedule.Entry{})
	require.NoError(t, err)
	require.Greater(t, version, int64(0))
	require.Len(t, entries, 1)

	ledger, _, err := other.Load(ctx, "instructor-ada-lovelace.json", nil)
	require.NoError(t, err)
	require.Contains(t, ledger, "2026-Fall")
}
