package client

import (
	"log/slog"

	"github.com/gschlitt/course-schedule-visualizer/pkg/core"
)

// options holds the internal configuration for a Client.
type options struct {
	store      core.Store
	logger     *slog.Logger
	onConflict func(Conflict)
	onError    func(error)
}

// Option defines a functional option for configuring a Client.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: slog.Default(),
	}
}

// WithStore sets the backing document store. A client without a store runs
// in degraded no-op mode: loads return defaults, saves report failure.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConflictHandler registers a callback invoked when a save is rejected
// because another user changed the document. Saves are asynchronous, so this
// is how a UI learns it must present the Overwrite/Reload choice.
func WithConflictHandler(fn func(Conflict)) Option {
	return func(o *options) {
		o.onConflict = fn
	}
}

// WithErrorHandler registers a callback for save failures other than
// conflicts (I/O errors, partial batch commits, unconfigured folder).
// Each failure is reported once; nothing is retried automatically.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}
