package api

import "errors"

// Error codes used in the JSON error envelope.
const (
	codeNotFound   = "not_found"
	codeReadError  = "read_error"
	codeParseError = "parse_error"
)

// Sentinel kinds for API errors.
var (
	ErrServe = errors.New("api serve failed")
)
