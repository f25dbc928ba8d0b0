package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

type VoteRepository struct {
	pool *pgxpool.Pool
}

func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

// Create inserts a vote. The unique index on (user_id, product_id) rejects
// concurrent duplicates; the violation surfaces as repository.ErrConflict.
func (r *VoteRepository) Create(ctx context.Context, v *entity.Vote) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO votes (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.UserID, v.ProductID, v.CreatedAt)
	if err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *VoteRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE user_id = $1 AND product_id = $2)
	`, userID, productID).Scan(&exists)
	return exists, err
}

func (r *VoteRepository) Delete(ctx context.Context, userID, productID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM votes WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

var _ repository.VoteRepository = (*VoteRepository)(nil)
