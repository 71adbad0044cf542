package client

import (
	"context"
	"fmt"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// State is the client's position in the conflict resolution protocol.
type State string

const (
	// StateClean means no save has been rejected; edits flow normally.
	StateClean State = "clean"

	// StateConflicted means another user changed a document between this
	// process's read and write. The losing save is parked until the user
	// picks Overwrite or Reload; resolution is binary and whole-document.
	StateConflicted State = "conflicted"
)

// Conflict describes a rejected save awaiting user resolution.
type Conflict struct {
	// Name is the primary document the write was rejected for.
	Name string
	// Mine is the local snapshot that lost the race.
	Mine core.Content
	// Theirs is what the store currently holds. Content may be nil if the
	// stored payload could not be parsed.
	Theirs core.Document
}

// State returns Clean or Conflicted.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conflict != nil {
		return StateConflicted
	}
	return StateClean
}

// Conflict returns the pending conflict, if any.
func (c *Client) Conflict() (Conflict, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conflict == nil {
		return Conflict{}, false
	}
	return *c.conflict, true
}

// enterConflict transitions Clean → Conflicted. Invoked from the save worker
// when a commit is rejected for the primary document.
func (c *Client) enterConflict(t task, err *core.ConflictError) {
	conflict := Conflict{
		Name: t.name,
		Mine: t.content,
		Theirs: core.Document{
			Name:    t.name,
			Content: err.Theirs,
			Version: err.Stored,
		},
	}

	c.mu.Lock()
	c.conflict = &conflict
	c.mu.Unlock()

	c.config.logger.Warn("document changed in shared folder, save parked",
		"name", t.name, "expected", err.Expected, "stored", err.Stored)
	if c.config.onConflict != nil {
		c.config.onConflict(conflict)
	}
}

// Overwrite resolves the conflict by force-writing the local snapshot:
// "keep mine". The write carries no precondition, the cache adopts the
// resulting version, and the client returns to Clean.
func (c *Client) Overwrite(ctx context.Context) error {
	conflict, ok := c.Conflict()
	if !ok {
		return fmt.Errorf("no conflict to resolve")
	}

	res, err := c.store.Write(ctx, conflict.Name, conflict.Mine, 0)
	if err != nil {
		return fmt.Errorf("failed to overwrite %s: %w", conflict.Name, err)
	}

	c.versions.set(conflict.Name, res.Version)
	c.clearConflict()
	c.config.logger.Info("conflict resolved by overwrite", "name", conflict.Name, "version", res.Version)
	return nil
}

// Reload resolves the conflict by adopting the stored content: "take
// theirs". The cached baseline is invalidated, the document re-read, and the
// fresh content returned for the caller to swap into its in-memory state.
// Pending local edits to the document are discarded, including any save
// still sitting in the queue.
func (c *Client) Reload(ctx context.Context) (core.Content, int64, error) {
	conflict, ok := c.Conflict()
	if !ok {
		return nil, 0, fmt.Errorf("no conflict to resolve")
	}

	// Drop queued saves built from the edits being abandoned.
	c.saver.supersede()
	c.versions.invalidate(conflict.Name)

	doc, found, err := c.store.Read(ctx, conflict.Name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reload %s: %w", conflict.Name, err)
	}
	if !found {
		// Deleted externally while conflicted: no baseline, caller starts fresh.
		c.clearConflict()
		return nil, 0, nil
	}

	c.versions.set(conflict.Name, doc.Version)
	c.clearConflict()
	c.config.logger.Info("conflict resolved by reload", "name", conflict.Name, "version", doc.Version)
	return doc.Content, doc.Version, nil
}

func (c *Client) clearConflict() {
	c.mu.Lock()
	c.conflict = nil
	c.mu.Unlock()
}
