package indexer

import "errors"

// Error taxonomy of the pipeline. None of these are retried automatically;
// only upstream failures are transient by nature and retrying is left to the
// webhook provider.
var (
	// ErrValidation marks bad input shape or missing required fields,
	// rejected before any side effect.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a referenced owner-scoped entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks an operation forbidden by the current
	// active/inactive status of a record.
	ErrInvalidState = errors.New("invalid state")

	// ErrUpstream marks a failing subscription provider or target database.
	ErrUpstream = errors.New("upstream failure")

	// ErrUnsafeInput marks column names or query text that failed a safety
	// check.
	ErrUnsafeInput = errors.New("unsafe input")
)
