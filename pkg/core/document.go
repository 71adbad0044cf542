// Document is the central entity of the domain.
package core

// Content is the decoded payload of a document. The synchronization layer is
// content-agnostic: it never interprets payload fields except inside derive
// functions supplied by the caller.
type Content = any

// Document is a named structured value stored in the shared folder.
// Version is the store-assigned modification timestamp in milliseconds,
// read back immediately after the relevant I/O call. Zero means "no known
// baseline": brand-new documents and force overwrites.
type Document struct {
	Name    string
	Content Content
	Version int64
}

// WriteResult reports the outcome of a conditional write.
// On conflict, Theirs carries the currently stored content (best effort:
// TheirsOK is false when it could not be parsed) and nothing was written.
type WriteResult struct {
	Conflict bool
	Version  int64
	Theirs   Content
	TheirsOK bool
}

// BatchEntry is one element of a batch commit request. Expected is the
// version precondition for this entry; zero is always satisfied. Derived
// documents are committed with Expected zero since they are idempotently
// recomputable from their primary.
type BatchEntry struct {
	Name     string
	Content  Content
	Expected int64
}

// EventType represents the type of external change in the shared folder.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change observed in the shared folder, typically an
// edit made by another user's process.
type Event struct {
	Type      EventType
	Name      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle event contract).
func (e Event) String() string {
	return string(e.Type) + " " + e.Name
}
