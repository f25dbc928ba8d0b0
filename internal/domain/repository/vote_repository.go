package repository

import (
	"context"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
)

// VoteRepository defines the interface for vote-related database operations.
type VoteRepository interface {
	Create(ctx context.Context, v *entity.Vote) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	// Delete removes the vote for the exact (user, product) pair and reports
	// whether a row was removed. Deleting an absent vote is not an error.
	Delete(ctx context.Context, userID, productID string) (bool, error)
}
