package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	// ErrNotConfigured indicates no shared folder has been selected.
	// Reads silently yield caller-supplied defaults in this state; writes
	// report this error without raising further.
	ErrNotConfigured = errors.New("no shared folder configured")

	// ErrConflict is the sentinel matched by ConflictError via errors.Is.
	ErrConflict = errors.New("version conflict")
)

// ConflictError reports that a write was rejected because the stored version
// no longer matches the caller's expectation. It is distinguished explicitly
// from plain I/O failures and is never resolved silently: resolution happens
// at whole-document granularity by explicit user choice.
type ConflictError struct {
	Name     string
	Expected int64
	Stored   int64
	Theirs   Content
	TheirsOK bool
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict on %s: expected %d, stored %d", e.Name, e.Expected, e.Stored)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PartialCommitError reports a failure during the rename phase of a batch
// commit: the documents in Applied already carry the new content, the ones in
// Pending do not. Callers must not assume all-or-nothing here. Re-applying
// the same batch is idempotent by construction since each document's new
// content fully supersedes the old.
type PartialCommitError struct {
	Applied []string
	Pending []string
	Err     error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partial batch commit: applied [%s], pending [%s]: %v",
		strings.Join(e.Applied, " "), strings.Join(e.Pending, " "), e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
