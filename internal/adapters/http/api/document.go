// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/nirlab/roiserve/internal/domain/document"
)

// DocumentHandler serves the parsed results document.
type DocumentHandler struct {
	deps Dependencies
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(deps Dependencies) *DocumentHandler {
	return &DocumentHandler{deps: deps}
}

// HandleDocument handles GET / requests. Every request performs one fresh
// read of the configured results file; the parsed JSON value is returned
// verbatim as the response body. Request headers, query parameters, and
// body never influence the payload.
func (h *DocumentHandler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	doc, meta, err := h.deps.Document(r.Context())
	if err != nil {
		// Strict mode preserves the original fail-fast behavior: the error
		// escalates to the server's top-level recovery instead of becoming
		// a client-facing response.
		if h.deps.StrictErrors() {
			panic(err)
		}

		switch {
		case errors.Is(err, document.ErrNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, err)
		case errors.Is(err, document.ErrParse):
			writeError(w, http.StatusInternalServerError, codeParseError, err)
		default:
			writeError(w, http.StatusInternalServerError, codeReadError, err)
		}
		return
	}

	w.Header().Set("X-Document-Digest", meta.DigestHex())
	writeJSON(w, http.StatusOK, doc)
}
