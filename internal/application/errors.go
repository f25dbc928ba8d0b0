package application

import (
	"errors"
	"fmt"

	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

var (
	// ErrNotFound marks operations that referenced a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations (duplicate email, duplicate vote).
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput marks inputs the transport-level validation cannot
	// express, such as an unknown trending timeframe.
	ErrInvalidInput = errors.New("invalid input")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func conflict(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrConflict)
}

// translateStoreErr maps constraint violations surfacing from the store onto
// the operation error taxonomy. The pre-checks in the services usually catch
// these first; under concurrency the store constraint is what actually holds,
// and its violation must read the same to the caller.
func translateStoreErr(err error, conflictMsg, fkKind, fkID string) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return conflict(conflictMsg)
	case errors.Is(err, repository.ErrNotFound):
		return notFound(fkKind, fkID)
	default:
		return err
	}
}
