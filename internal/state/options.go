package state

import (
	"log/slog"
	"sync"
)

type options struct {
	logger *slog.Logger
}

// Option configures a State.
type Option func(*options)

// WithLogger sets the logger that receives fallback and write diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type watchOptions struct {
	lock sync.Locker
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

// WithReloadLock holds l around every reload the watcher triggers, so
// listeners run under the same lock as the caller's own writes.
func WithReloadLock(l sync.Locker) WatchOption {
	return func(o *watchOptions) { o.lock = l }
}
