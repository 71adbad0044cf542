package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gschlitt/course-schedule-visualizer/pkg/schedule"
)

func TestTermKey(t *testing.T) {
	term := schedule.Term{Year: 2026, Semester: "Fall"}
	require.Equal(t, "2026-Fall", term.Key())
	require.Equal(t, "sections-2026-Fall.json", schedule.SectionsDocument(term))

	parsed, err := schedule.ParseTermKey("2026-Fall")
	require.NoError(t, err)
	require.Equal(t, term, parsed)

	for _, bad := range []string{"", "Fall-2026", "26-Fall", "2026Fall", "2026-"} {
		_, err := schedule.ParseTermKey(bad)
		require.Error(t, err, "key %q", bad)
	}
}

func TestDecodeEntries(t *testing.T) {
	entries, err := schedule.DecodeEntries(nil)
	require.NoError(t, err)
	require.Empty(t, entries)

	entries, err = schedule.DecodeEntries([]any{
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "CS101", entries[0].Course)
	require.Equal(t, "Ada Lovelace", entries[0].Instructor)
	require.Equal(t, 3, entries[0].Credits)

	_, err = schedule.DecodeEntries(map[string]any{"not": "a list"})
	require.Error(t, err)
}
