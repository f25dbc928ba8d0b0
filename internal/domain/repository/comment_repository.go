package repository

import (
	"context"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
)

// CommentRepository defines the interface for comment-related database operations.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByProduct returns a product's comments, newest first.
	ListByProduct(ctx context.Context, productID string) ([]entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
}
