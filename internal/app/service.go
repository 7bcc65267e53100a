// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nirlab/roiserve/internal/adapters/store"
	"github.com/nirlab/roiserve/internal/domain/document"
	"github.com/nirlab/roiserve/pkg/logger"
)

// Service implements the API dependencies for the results document server.
type Service struct {
	mu sync.RWMutex

	// Core components
	reader *store.Reader

	// Configuration
	resultsPath  string
	strictErrors bool

	// State
	started   bool
	startedAt time.Time

	// Read accounting (atomic; updated on every Document call)
	reads          atomic.Int64
	notFoundErrors atomic.Int64
	readErrors     atomic.Int64
	parseErrors    atomic.Int64
	lastBytes      atomic.Int64
	lastDigest     atomic.Uint64
	lastSuccess    atomic.Int64 // unix seconds, 0 until first success

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithResultsPath sets the results document location.
func WithResultsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.resultsPath = path
		}
	}
}

// WithReader sets a custom document reader, overriding the path-based default.
func WithReader(r *store.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.reader = r
		}
	}
}

// WithStrictErrors enables fail-fast parity mode.
func WithStrictErrors(strict bool) Option {
	return func(s *Service) {
		s.strictErrors = strict
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resultsPath: store.DefaultPath,
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting results document service...")

	if s.reader == nil {
		s.reader = store.NewReader(
			store.WithPath(s.resultsPath),
			store.WithLogger(s.logger),
		)
	}

	// The results file is externally managed and may appear after startup;
	// a missing file is a warning here, not a startup failure.
	if _, err := os.Stat(s.reader.Path()); err != nil {
		s.logger.Warn(ctx, "results document not readable at startup",
			logger.String("path", s.reader.Path()),
			logger.Error(err),
		)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "results document service started",
		logger.String("path", s.reader.Path()),
		logger.Any("strictErrors", s.strictErrors),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "results document service stopped")
	s.started = false
}

// Document performs one fresh read of the results file and returns the
// decoded JSON value. Errors carry the document sentinel kinds.
func (s *Service) Document(ctx context.Context) (any, document.Metadata, error) {
	s.mu.RLock()
	reader := s.reader
	s.mu.RUnlock()

	if reader == nil {
		reader = store.NewReader(store.WithPath(s.resultsPath))
	}

	doc, meta, err := reader.Read(ctx)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			s.notFoundErrors.Add(1)
		case errors.Is(err, document.ErrParse):
			s.parseErrors.Add(1)
		default:
			s.readErrors.Add(1)
		}
		return nil, meta, err
	}

	s.reads.Add(1)
	s.lastBytes.Store(meta.Size)
	s.lastDigest.Store(meta.Digest)
	s.lastSuccess.Store(time.Now().Unix())

	return doc, meta, nil
}

// StrictErrors reports whether fail-fast parity mode is enabled.
func (s *Service) StrictErrors() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strictErrors
}

// ResultsPath returns the configured results document location.
func (s *Service) ResultsPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.reader != nil {
		return s.reader.Path()
	}
	return s.resultsPath
}

// GetStats returns a snapshot of service counters for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"resultsPath":  s.resultsPath,
		"strictErrors": s.strictErrors,
		"reads":        s.reads.Load(),
		"notFound":     s.notFoundErrors.Load(),
		"readErrors":   s.readErrors.Load(),
		"parseErrors":  s.parseErrors.Load(),
	}

	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	if last := s.lastSuccess.Load(); last > 0 {
		meta := document.Metadata{Digest: s.lastDigest.Load()}
		stats["lastDocumentBytes"] = s.lastBytes.Load()
		stats["lastDocumentDigest"] = meta.DigestHex()
		stats["lastSuccess"] = time.Unix(last, 0).UTC().Format(time.RFC3339)
	}

	return stats
}
