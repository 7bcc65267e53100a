// Package store provides the filesystem-backed document reader. Every Read
// hits the disk: there is no cache, no watcher, and no coalescing of
// concurrent reads. The results file is externally managed and treated as
// read-only.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/nirlab/roiserve/internal/domain/document"
	"github.com/nirlab/roiserve/pkg/logger"
	"github.com/nirlab/roiserve/pkg/metrics"
)

// DefaultPath matches the output file name written by the tracking pipeline.
const DefaultPath = "Output.json"

// Reader reads and decodes the configured results file.
type Reader struct {
	path string
	log  logger.Logger
}

// NewReader creates a Reader with default configuration.
func NewReader(opts ...Option) *Reader {
	r := &Reader{
		path: DefaultPath,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Path returns the configured results file location.
func (r *Reader) Path() string {
	return r.path
}

// Read performs one fresh read of the results file and decodes it as JSON.
// The returned value is whatever top-level JSON value the file holds.
func (r *Reader) Read(ctx context.Context) (any, document.Metadata, error) {
	start := time.Now()
	meta := document.Metadata{Path: r.path}

	if err := ctx.Err(); err != nil {
		metrics.RecordDocumentReadError("canceled")
		return nil, meta, fmt.Errorf("%w: %w", document.ErrRead, err)
	}

	// Stat before the read so ModTime never describes bytes newer than the
	// digest. A write landing between the two leaves ModTime one step behind,
	// which the stats snapshot tolerates.
	if info, statErr := os.Stat(r.path); statErr == nil {
		meta.ModTime = info.ModTime()
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordDocumentReadError("not_found")
			return nil, meta, fmt.Errorf("%w: %w", document.ErrNotFound, err)
		}
		metrics.RecordDocumentReadError("read")
		return nil, meta, fmt.Errorf("%w: %w", document.ErrRead, err)
	}

	meta.Size = int64(len(raw))
	meta.Digest = xxhash.Sum64(raw)

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		metrics.RecordDocumentReadError("parse")
		return nil, meta, fmt.Errorf("%w: %w", document.ErrParse, err)
	}

	meta.ReadDuration = time.Since(start)
	metrics.RecordDocumentRead()
	metrics.RecordDocumentReadDuration(float64(meta.ReadDuration.Milliseconds()))
	metrics.UpdateDocumentBytes(meta.Size)

	if r.log != nil {
		r.log.Debug(ctx, "results document read",
			logger.String("path", r.path),
			logger.Int("bytes", len(raw)),
			logger.String("digest", meta.DigestHex()),
		)
	}

	return doc, meta, nil
}
