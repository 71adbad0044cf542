package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// LedgerKind selects which entry field owns a workload ledger.
type LedgerKind string

const (
	LedgerInstructor LedgerKind = "instructor"
	LedgerCourse     LedgerKind = "course"
)

// Record is one summary line in a workload ledger.
type Record struct {
	Course     string `json:"course"`
	Section    string `json:"section"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Slot       string `json:"slot"`
	Credits    int    `json:"credits"`
}

// LedgerDocument returns the ledger document name for an owner key,
// e.g. "instructor-ada-lovelace.json". Ledger content maps term keys to
// record lists; only the active term's entry is ever replaced.
func LedgerDocument(kind LedgerKind, ownerKey string) string {
	return fmt.Sprintf("%s-%s.json", kind, ownerKey)
}

// LedgerPattern matches every ledger document of a kind.
func LedgerPattern(kind LedgerKind) string {
	return string(kind) + "-*.json"
}

// ownerKeyFromDocument extracts the owner key back out of a ledger document
// name.
func ownerKeyFromDocument(kind LedgerKind, name string) (string, bool) {
	prefix := string(kind) + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
		return "", false
	}
	key := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
	if key == "" {
		return "", false
	}
	return key, true
}

// Updater recomputes per-owner workload ledgers from a term's sections
// document. It implements core.DeriveFunc, so changed ledgers commit in the
// same batch as the sections document they are derived from.
type Updater struct {
	Term  Term
	Kinds []LedgerKind
}

// NewUpdater tracks the standard aggregates: instructor and course ledgers.
func NewUpdater(term Term) Updater {
	return Updater{
		Term:  term,
		Kinds: []LedgerKind{LedgerInstructor, LedgerCourse},
	}
}

// Derive returns the ledger documents whose content actually changed.
//
// Affected owners are the union of owners referenced by the new entries and
// owners with an existing ledger document, so an owner whose last section
// was removed gets the term cleared from their ledger. Ledgers whose
// recomputed content equals the stored content are omitted entirely: their
// versions stay put and no reader holding a cached version sees a spurious
// conflict.
func (u Updater) Derive(ctx context.Context, primary core.Document, store core.Reader) ([]core.Document, error) {
	entries, err := DecodeEntries(primary.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}

	termKey := u.Term.Key()
	var docs []core.Document

	for _, kind := range u.Kinds {
		owners := make(map[string]bool)
		for _, e := range entries {
			if key := sanitizeOwner(ownerOf(kind, e)); key != "" {
				owners[key] = true
			}
		}

		existing, err := store.List(ctx, LedgerPattern(kind))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s ledgers: %w", kind, err)
		}
		for _, name := range existing {
			if key, ok := ownerKeyFromDocument(kind, name); ok {
				owners[key] = true
			}
		}

		keys := make([]string, 0, len(owners))
		for key := range owners {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			name := LedgerDocument(kind, key)

			doc, found, err := store.Read(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to read ledger %s: %w", name, err)
			}
			old := make(map[string]any)
			if found {
				if m, ok := doc.Content.(map[string]any); ok {
					old = m
				}
			}

			records := recordsFor(kind, key, entries)
			if len(records) == 0 {
				if _, ok := old[termKey]; !ok {
					// Owner never had sections this term: no ledger to touch.
					continue
				}
			}

			// Replace only the active term's entry; every other term key is
			// carried over untouched.
			next := make(map[string]any, len(old)+1)
			for k, v := range old {
				next[k] = v
			}
			next[termKey] = records

			normalized, err := normalize(next)
			if err != nil {
				return nil, fmt.Errorf("failed to normalize ledger %s: %w", name, err)
			}
			if found && reflect.DeepEqual(normalized, doc.Content) {
				continue
			}

			docs = append(docs, core.Document{Name: name, Content: normalized})
		}
	}

	return docs, nil
}

// ownerOf returns the entry field a ledger kind is keyed on.
func ownerOf(kind LedgerKind, e Entry) string {
	switch kind {
	case LedgerInstructor:
		return e.Instructor
	case LedgerCourse:
		return e.Course
	default:
		return ""
	}
}

// recordsFor builds the sorted summary records for one owner and term.
func recordsFor(kind LedgerKind, ownerKey string, entries []Entry) []Record {
	records := []Record{} // empty, not nil: an owner with no sections keeps an empty list
	for _, e := range entries {
		if sanitizeOwner(ownerOf(kind, e)) != ownerKey {
			continue
		}
		records = append(records, Record{
			Course:     e.Course,
			Section:    e.Section,
			Instructor: e.Instructor,
			Room:       e.Room,
			Slot:       e.Slot,
			Credits:    e.Credits,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Course != records[j].Course {
			return records[i].Course < records[j].Course
		}
		if records[i].Section != records[j].Section {
			return records[i].Section < records[j].Section
		}
		return records[i].Instructor < records[j].Instructor
	})
	return records
}

// normalize round-trips a value through JSON so it compares cleanly against
// content decoded from disk.
func normalize(v any) (core.Content, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out core.Content
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
