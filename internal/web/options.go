package web

import "log/slog"

type options struct {
	logger   *slog.Logger
	pageSize int
}

// Option configures a Server.
type Option func(*options)

// WithLogger sets the logger for request and store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPageSize sets how many todos are shown per page.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}
