// Package document defines the shared types describing the results document
// served by the HTTP API. The document itself is schema-free: whatever JSON
// value the tracking pipeline wrote (object, array, or scalar) is passed
// through verbatim.
package document

import (
	"fmt"
	"time"
)

// Metadata describes a single read of the results document. It never alters
// the served payload; it feeds stats, logs, and metrics.
type Metadata struct {
	// Path is the filesystem location the bytes were read from.
	Path string

	// Size is the raw byte length of the file content.
	Size int64

	// Digest is the xxhash64 fingerprint of the raw bytes. Two reads of an
	// unchanged file produce the same digest.
	Digest uint64

	// ModTime is the file modification time observed alongside the read.
	ModTime time.Time

	// ReadDuration is the wall time spent reading and parsing.
	ReadDuration time.Duration
}

// DigestHex renders the digest as a fixed-width lowercase hex string.
func (m Metadata) DigestHex() string {
	return fmt.Sprintf("%016x", m.Digest)
}
