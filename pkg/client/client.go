// Package client implements the document synchronization client: cached
// version baselines for optimistic concurrency, serialized non-blocking
// saves, and the two-state conflict resolution protocol.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/lifecycle"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// Client coordinates reads and writes of shared scheduling documents for one
// process. Saves are asynchronous: the caller's edit is snapshotted and
// enqueued, rapid bursts coalesce, and conflicts with other users' edits
// surface through the Clean/Conflicted protocol rather than as errors.
//
// A Client built without a store runs degraded: loads yield the caller's
// defaults, saves report core.ErrNotConfigured through the error handler.
type Client struct {
	store    core.Store
	config   options
	versions *versionCache
	saver    *saver

	mu       sync.RWMutex
	conflict *Conflict // nil while Clean

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a client and starts its save worker. Callers must Close it.
func New(opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		store:    o.store,
		config:   o,
		versions: newVersionCache(),
		done:     make(chan struct{}),
	}
	c.saver = newSaver(c.runSave)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(c.done)
		return c.saver.run(ctx)
	}, lifecycle.WithErrorHandler(func(err error) {
		c.report(fmt.Errorf("save worker: %w", err))
	}))

	return c
}

// Configured reports whether a shared folder is backing this client.
func (c *Client) Configured() bool {
	return c.store != nil
}

// Load reads a document, returning def when the document is absent or no
// folder is configured. Successful reads record the observed version as the
// baseline for the next save of that document.
func (c *Client) Load(ctx context.Context, name string, def core.Content) (core.Content, int64, error) {
	if c.store == nil {
		c.config.logger.Debug("load skipped, no shared folder configured", "name", name)
		return def, 0, nil
	}

	doc, found, err := c.store.Read(ctx, name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load %s: %w", name, err)
	}
	if !found {
		return def, 0, nil
	}

	c.versions.set(name, doc.Version)
	return doc.Content, doc.Version, nil
}

// Save snapshots content and enqueues it for persistence. It never blocks on
// I/O. When derive is non-nil it recomputes aggregate documents from the
// snapshot, and the changed ones commit in the same batch as the primary.
// Only the newest of a rapid burst of saves ever reaches storage.
func (c *Client) Save(name string, content core.Content, derive core.DeriveFunc) {
	if c.store == nil {
		c.report(fmt.Errorf("failed to save %s: %w", name, core.ErrNotConfigured))
		return
	}
	gen := c.saver.enqueue(name, content, derive)
	c.config.logger.Debug("save enqueued", "name", name, "generation", gen)
}

// Flush blocks until every enqueued save has been executed or discarded.
func (c *Client) Flush(ctx context.Context) error {
	return c.saver.flush(ctx)
}

// Close stops the save worker. Pending saves that have not begun committing
// are dropped; call Flush first to let them drain.
func (c *Client) Close(ctx context.Context) error {
	c.cancel()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runSave executes one save task: derive aggregates, assemble the batch
// under version preconditions from the cache, and commit. Invoked only from
// the saver's drainer goroutine.
func (c *Client) runSave(ctx context.Context, t task) {
	primary := core.Document{Name: t.name, Content: t.content}
	entries := []core.BatchEntry{{
		Name:     t.name,
		Content:  t.content,
		Expected: c.versions.get(t.name),
	}}

	if t.derive != nil {
		derived, err := t.derive(ctx, primary, c.store)
		if err != nil {
			c.report(fmt.Errorf("failed to derive aggregates for %s: %w", t.name, err))
			return
		}
		for _, d := range derived {
			// Aggregates carry no precondition: they are recomputable, and a
			// precondition would manufacture conflicts for other readers.
			entries = append(entries, core.BatchEntry{Name: d.Name, Content: d.Content})
		}
	}

	// A newer edit may have arrived while aggregates were computed; its
	// snapshot supersedes this one.
	if !c.saver.current(t.gen) {
		c.config.logger.Debug("save superseded before commit", "name", t.name, "generation", t.gen)
		return
	}

	versions, err := c.store.Commit(ctx, entries)
	if err != nil {
		var conflict *core.ConflictError
		if errors.As(err, &conflict) {
			c.enterConflict(t, conflict)
			return
		}
		c.report(fmt.Errorf("failed to commit %s: %w", t.name, err))
		return
	}

	for name, v := range versions {
		c.versions.set(name, v)
	}
	c.config.logger.Debug("save committed", "name", t.name, "documents", len(versions))
}

// report routes an operational failure to the configured handler. Failures
// are surfaced once and left to the caller to retry; there is no automatic
// retry anywhere in the layer.
func (c *Client) report(err error) {
	c.config.logger.Error("save failed", "error", err)
	if c.config.onError != nil {
		c.config.onError(err)
	}
}
