// Package schedule defines the scheduling payloads the synchronization layer
// carries: term-scoped section lists and the per-owner workload ledgers
// derived from them. This is the only package that interprets document
// content; everything else treats payloads as opaque.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gschlitt/course-schedule-visualizer/pkg/client"
	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// Term identifies an academic term, e.g. 2026 Fall.
type Term struct {
	Year     int    `json:"year"`
	Semester string `json:"semester"`
}

// Key returns the term key used inside documents and document names,
// e.g. "2026-Fall".
func (t Term) Key() string {
	return fmt.Sprintf("%d-%s", t.Year, t.Semester)
}

var termKeyPattern = regexp.MustCompile(`^(\d{4})-(\w+)$`)

// ParseTermKey parses a term key like "2026-Fall".
func ParseTermKey(key string) (Term, error) {
	m := termKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return Term{}, fmt.Errorf("invalid term key: %s", key)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Term{}, fmt.Errorf("invalid term key: %s", key)
	}
	return Term{Year: year, Semester: m[2]}, nil
}

// Entry is one scheduled section of a course.
type Entry struct {
	Course     string `json:"course"`
	Section    string `json:"section"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Slot       string `json:"slot"`
	Credits    int    `json:"credits"`
}

// Global catalog documents, not scoped to a term.
const (
	InstructorsDocument = "instructors.json"
	CoursesDocument     = "courses.json"
	YearsDocument       = "years.json"
	SettingsDocument    = "settings.json"
)

// SectionsDocument returns the name of a term's primary sections document,
// e.g. "sections-2026-Fall.json".
func SectionsDocument(t Term) string {
	return fmt.Sprintf("sections-%s.json", t.Key())
}

// DecodeEntries converts raw sections-document content into entries.
// Nil content (a brand-new term) yields an empty list.
func DecodeEntries(content core.Content) ([]Entry, error) {
	if content == nil {
		return nil, nil
	}
	return client.DecodeAs[[]Entry](content)
}

// sanitizeOwner turns an owner name into a document-name-safe key:
// "Ada Lovelace" -> "ada-lovelace".
func sanitizeOwner(owner string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(owner)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune('-')
		}
	}
	return b.String()
}
