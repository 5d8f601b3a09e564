package repository

import "errors"

// Sentinel errors returned by repository implementations. Services map
// these onto domain errors with entity-specific messages.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a write violated a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)
