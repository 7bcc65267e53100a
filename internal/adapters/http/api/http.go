// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nirlab/roiserve/internal/domain/document"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Document performs one fresh read of the results file and returns the
	// decoded JSON value together with read metadata.
	Document(ctx context.Context) (any, document.Metadata, error)

	// StrictErrors reports whether read/parse failures should escalate as
	// panics instead of error responses.
	StrictErrors() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	documentHandler  *DocumentHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler

	gzip bool
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, gzipEnabled bool) *Server {
	return &Server{
		documentHandler:  NewDocumentHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newdashboardHandler(),
		gzip:             gzipEnabled,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))

	// The document route owns "/"; the handler itself rejects other paths.
	mux.HandleFunc("/", s.wrap(s.documentHandler.HandleDocument, "document"))
}

// wrap applies the standard middleware chain to a JSON handler.
func (s *Server) wrap(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	h := next
	if s.gzip {
		h = GzipMiddleware(h)
	}
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
