package store

import "github.com/nirlab/roiserve/pkg/logger"

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithPath sets the results file location.
func WithPath(path string) Option {
	return func(r *Reader) {
		if path != "" {
			r.path = path
		}
	}
}

// WithLogger sets a logger for per-read debug output.
func WithLogger(log logger.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}
