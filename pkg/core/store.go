package core

import "context"

// Reader is the read-only view of a document store. Derive functions receive
// it so they can consult prior aggregate state without being able to write.
type Reader interface {
	// Read retrieves a document by name. Absence is not an error: found is
	// false and the zero Document is returned.
	Read(ctx context.Context, name string) (doc Document, found bool, err error)

	// List returns the names of documents matching a glob pattern
	// (doublestar syntax), relative to the store root.
	List(ctx context.Context, pattern string) ([]string, error)
}

// Store defines the contract for durable document storage with optimistic
// concurrency control. Adhering to this interface keeps the client
// independent of the underlying mechanism (local folder, network mount,
// in-memory fake for tests).
//
// No implementation may lock the shared folder: conflicting writes by other
// processes are detected after the fact, never prevented.
type Store interface {
	Reader

	// Write persists a document if the version precondition holds.
	// The store creates its root directory if missing. A document that does
	// not yet exist always accepts the write regardless of expected.
	Write(ctx context.Context, name string, content Content, expected int64) (WriteResult, error)

	// Commit applies a batch of writes that must become visible together.
	// It stages every entry to a sibling temp file, then renames each onto
	// its final name, then reports the new version of every entry.
	// Staging failures roll back completely; rename failures surface as a
	// *PartialCommitError. Version preconditions are checked before any
	// staging occurs and surface as a *ConflictError.
	Commit(ctx context.Context, entries []BatchEntry) (map[string]int64, error)
}

// Watchable is implemented by stores that can observe external edits.
type Watchable interface {
	// Watch emits events for documents matching pattern until ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// DeriveFunc recomputes aggregate documents from a primary document's new
// content. It returns only the aggregates that actually changed; unchanged
// aggregates must be omitted so their versions are not bumped.
type DeriveFunc func(ctx context.Context, primary Document, store Reader) ([]Document, error)
