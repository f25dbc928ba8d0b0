package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, content, author_id, product_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Content, c.AuthorID, c.ProductID, c.CreatedAt)
	if err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, content, author_id, product_id, created_at
		FROM comments
		WHERE id = $1
	`, id)

	if err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.ProductID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

func (r *CommentRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, author_id, product_id, created_at
		FROM comments
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Comment, 0)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.AuthorID, &c.ProductID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update changes content only; author, product and created_at are immutable.
func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET content = $1
		WHERE id = $2
	`, c.Content, c.ID)
	if err != nil {
		return translateErr(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
