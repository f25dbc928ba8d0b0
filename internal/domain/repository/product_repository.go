package repository

import (
	"context"
	"time"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
)

// ProductRepository defines the interface for product-related database
// operations. List methods returning plain products filter to locally made
// submissions (is_made_in_my = true) except ListByAuthor, which returns all
// of an author's products. Ordering is created_at descending, id descending
// as a stable tiebreak.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	ListByLocation(ctx context.Context, location string) ([]entity.Product, error)
	// ListByTags matches products whose tag set overlaps the given tags.
	// An empty tag list means no tag filter.
	ListByTags(ctx context.Context, tags []string) ([]entity.Product, error)
	ListByAuthor(ctx context.Context, authorID string) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error

	// ListWithVotes returns locally made products with their all-time vote
	// counts, ordered by vote count descending then created_at descending.
	// When viewerID is non-nil, UserVoted reflects that viewer's vote.
	ListWithVotes(ctx context.Context, viewerID *string) ([]entity.ProductWithVotes, error)
	// ListTrending is like ListWithVotes but only counts votes created at or
	// after the cutoff. Products without recent votes are still listed with a
	// zero count. UserVoted is always nil.
	ListTrending(ctx context.Context, since time.Time) ([]entity.ProductWithVotes, error)
}
