package document

import "errors"

// Sentinel kinds for document read failures. Callers classify with errors.Is.
var (
	// ErrNotFound marks a missing results file.
	ErrNotFound = errors.New("results document not found")

	// ErrRead marks any other read failure (permission, I/O).
	ErrRead = errors.New("results document read failed")

	// ErrParse marks file content that is not valid JSON.
	ErrParse = errors.New("results document parse failed")
)
