package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist, or a write
	// referenced a missing row (foreign key violation).
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a store-level uniqueness constraint rejected the
	// write. The constraint is the authoritative guard; application
	// pre-checks only exist to produce friendlier errors first.
	ErrConflict = errors.New("repository: conflict")
)
