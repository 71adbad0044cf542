package schedsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/gschlitt/course-schedule-visualizer/internal/config"
	"github.com/gschlitt/course-schedule-visualizer/pkg/adapters/fs"
	"github.com/gschlitt/course-schedule-visualizer/pkg/client"
	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// --- Types ---

// Client is the synchronization client for shared scheduling documents.
type Client = client.Client

// Conflict describes a rejected save awaiting user resolution.
type Conflict = client.Conflict

// State is the client's position in the conflict resolution protocol.
type State = client.State

const (
	StateClean      = client.StateClean
	StateConflicted = client.StateConflicted
)

// --- Configuration ---

// Option defines a functional option for configuring a client.
type Option = client.Option

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return client.WithLogger(logger)
}

// WithStore injects a custom document store (e.g. a fake in tests).
func WithStore(store core.Store) Option {
	return client.WithStore(store)
}

// WithConflictHandler registers a callback for rejected saves.
func WithConflictHandler(fn func(Conflict)) Option {
	return client.WithConflictHandler(fn)
}

// WithErrorHandler registers a callback for save failures other than conflicts.
func WithErrorHandler(fn func(error)) Option {
	return client.WithErrorHandler(fn)
}

// --- Factory ---

// New opens a synchronization client for the shared folder recorded in the
// persisted configuration. When no folder has been selected yet, the client
// runs in degraded no-op mode: loads return caller defaults and saves report
// failure, rather than erroring.
func New(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(cfg.Folder.Path, opts...), nil
}

// Open opens a synchronization client rooted at folder. An empty folder
// yields a degraded client. For store-level knobs (conflict tolerance,
// custom codecs), build an fs.Store yourself and pass it via WithStore.
func Open(folder string, opts ...Option) *Client {
	if folder == "" {
		return client.New(opts...)
	}
	store := fs.New(fs.Config{Root: folder})
	return client.New(append([]Option{client.WithStore(store)}, opts...)...)
}

// SelectFolder persists the shared folder selection used by New.
func SelectFolder(path string) error {
	return config.SetFolder(path)
}

// --- Typed access ---

// LoadAs reads a document and decodes it into T, returning def when the
// document is absent or no folder is configured.
func LoadAs[T any](ctx context.Context, c *Client, name string, def T) (T, int64, error) {
	return client.LoadAs(ctx, c, name, def)
}

// DecodeAs converts raw document content into a typed value.
func DecodeAs[T any](content core.Content) (T, error) {
	return client.DecodeAs[T](content)
}

// --- Store construction ---

// DefaultTolerance is the conflict tolerance used by stores built by Open.
const DefaultTolerance = fs.DefaultTolerance

// OpenStore builds a shared-folder store directly, for callers that want to
// tune it before wrapping it in a client.
func OpenStore(folder string, tolerance time.Duration, logger *slog.Logger) *fs.Store {
	return fs.New(fs.Config{Root: folder, Tolerance: tolerance, Logger: logger})
}
