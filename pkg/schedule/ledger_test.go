package schedule_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gschlitt/course-schedule-visualizer/pkg/adapters/fs"
	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
	"github.com/gschlitt/course-schedule-visualizer/pkg/schedule"
)

var fall2026 = schedule.Term{Year: 2026, Semester: "Fall"}

func setupLedgerStore(t *testing.T) *fs.Store {
	t.Helper()
	return fs.New(fs.Config{Root: filepath.Join(t.TempDir(), "shared")})
}

func sections(entries ...map[string]any) core.Document {
	content := make([]any, len(entries))
	for i, e := range entries {
		content[i] = e
	}
	return core.Document{Name: schedule.SectionsDocument(fall2026), Content: content}
}

func docByName(docs []core.Document, name string) (core.Document, bool) {
	for _, d := range docs {
		if d.Name == name {
			return d, true
		}
	}
	return core.Document{}, false
}

func TestDeriveBuildsLedgers(t *testing.T) {
	store := setupLedgerStore(t)
	updater := schedule.NewUpdater(fall2026)

	primary := sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "room": "H-201", "slot": "MWF-0900", "credits": float64(3)},
		map[string]any{"course": "CS101", "section": "02", "instructor": "Grace Hopper", "room": "H-202", "slot": "TTh-1030", "credits": float64(3)},
		map[string]any{"course": "MATH200", "section": "01", "instructor": "Ada Lovelace", "room": "M-101", "slot": "MWF-1100", "credits": float64(4)},
	)

	docs, err := updater.Derive(context.Background(), primary, store)
	require.NoError(t, err)

	// Two instructors plus two courses.
	require.Len(t, docs, 4)

	ada, ok := docByName(docs, "instructor-ada-lovelace.json")
	require.True(t, ok, "owner names are sanitized into document names")
	ledger, ok := ada.Content.(map[string]any)
	require.True(t, ok)
	records, ok := ledger["2026-Fall"].([]any)
	require.True(t, ok)
	require.Len(t, records, 2)

	// Records are sorted by course then section.
	first, ok := records[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "CS101", first["course"])
	require.Equal(t, "01", first["section"])

	cs101, ok := docByName(docs, "course-cs101.json")
	require.True(t, ok)
	courseLedger := cs101.Content.(map[string]any)
	require.Len(t, courseLedger["2026-Fall"].([]any), 2)
}

func TestDeriveSkipsUnchangedLedgers(t *testing.T) {
	store := setupLedgerStore(t)
	updater := schedule.NewUpdater(fall2026)
	ctx := context.Background()

	primary := sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	)

	docs, err := updater.Derive(ctx, primary, store)
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	entries := make([]core.BatchEntry, 0, len(docs)+1)
	entries = append(entries, core.BatchEntry{Name: primary.Name, Content: primary.Content})
	for _, d := range docs {
		entries = append(entries, core.BatchEntry{Name: d.Name, Content: d.Content})
	}
	_, err = store.Commit(ctx, entries)
	require.NoError(t, err)

	// Re-deriving from identical sections changes nothing, so no ledger may
	// be rewritten and no version may move.
	docs, err = updater.Derive(ctx, primary, store)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestDerivePreservesOtherTerms(t *testing.T) {
	store := setupLedgerStore(t)
	ctx := context.Background()

	spring := []any{
		map[string]any{"course": "CS050", "section": "01", "instructor": "Ada Lovelace", "room": "", "slot": "", "credits": float64(2)},
	}
	_, err := store.Write(ctx, "instructor-ada-lovelace.json", map[string]any{"2026-Spring": spring}, 0)
	require.NoError(t, err)

	updater := schedule.NewUpdater(fall2026)
	primary := sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	)

	docs, err := updater.Derive(ctx, primary, store)
	require.NoError(t, err)

	ada, ok := docByName(docs, "instructor-ada-lovelace.json")
	require.True(t, ok)
	ledger := ada.Content.(map[string]any)
	require.Contains(t, ledger, "2026-Spring")
	require.Contains(t, ledger, "2026-Fall")
	require.Equal(t, spring, ledger["2026-Spring"])
}

func TestDeriveClearsVacatedOwner(t *testing.T) {
	store := setupLedgerStore(t)
	updater := schedule.NewUpdater(fall2026)
	ctx := context.Background()

	// Ada had a section this term; the new sections list drops it.
	seeded, err := updater.Derive(ctx, sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	), store)
	require.NoError(t, err)
	batch := make([]core.BatchEntry, 0, len(seeded))
	for _, d := range seeded {
		batch = append(batch, core.BatchEntry{Name: d.Name, Content: d.Content})
	}
	_, err = store.Commit(ctx, batch)
	require.NoError(t, err)

	docs, err := updater.Derive(ctx, sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Grace Hopper", "credits": float64(3)},
	), store)
	require.NoError(t, err)

	ada, ok := docByName(docs, "instructor-ada-lovelace.json")
	require.True(t, ok, "vacated owner still gets the term cleared")
	ledger := ada.Content.(map[string]any)
	require.Equal(t, []any{}, ledger["2026-Fall"])
}

func TestDeriveIgnoresOwnersAbsentFromTerm(t *testing.T) {
	store := setupLedgerStore(t)
	ctx := context.Background()

	// A ledger that only covers another term is untouched by this term's
	// updates.
	_, err := store.Write(ctx, "instructor-emmy-noether.json", map[string]any{
		"2025-Fall": []any{},
	}, 0)
	require.NoError(t, err)

	updater := schedule.NewUpdater(fall2026)
	docs, err := updater.Derive(ctx, sections(
		map[string]any{"course": "CS101", "section": "01", "instructor": "Ada Lovelace", "credits": float64(3)},
	), store)
	require.NoError(t, err)

	_, ok := docByName(docs, "instructor-emmy-noether.json")
	require.False(t, ok)
}

func TestDeriveRejectsMalformedSections(t *testing.T) {
	store := setupLedgerStore(t)
	updater := schedule.NewUpdater(fall2026)

	primary := core.Document{
		Name:    schedule.SectionsDocument(fall2026),
		Content: map[string]any{"not": "a list"},
	}
	_, err := updater.Derive(context.Background(), primary, store)
	require.Error(t, err)
}
