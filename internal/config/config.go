// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ResultsPath locates the JSON results document written by the tracking
	// pipeline. Set once at startup, immutable for the process lifetime.
	ResultsPath string `koanf:"results_path"`

	// StrictErrors enables fail-fast parity mode: read or parse failures
	// panic out of the handler instead of producing an error response.
	StrictErrors bool `koanf:"strict_errors"`

	// Gzip enables transparent response compression on JSON routes.
	Gzip bool `koanf:"gzip"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		ResultsPath:  "Output.json",
		StrictErrors: false,
		Gzip:         true,
	}
	return c
}
