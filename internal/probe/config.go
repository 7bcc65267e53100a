// Package probe implements a verification client for a running roiserve
// instance: it fetches the document route concurrently and checks that every
// response carries the same parsed JSON value.
package probe

import "time"

// Config holds configuration for the document probe
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of document fetches
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// Stats holds probe statistics
type Stats struct {
	Requested  int
	Successful int
	Failed     int
	Mismatched int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
