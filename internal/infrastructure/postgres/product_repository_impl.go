package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

const productColumns = `id, title, description, url, tags, location, is_made_in_my, created_at, author_id`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, title, description, url, tags, location, is_made_in_my, created_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.Title, p.Description, p.URL, p.Tags, p.Location, p.IsMadeInMY, p.CreatedAt, p.AuthorID)
	if err != nil {
		return translateErr(err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p := &entity.Product{}
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_made_in_my = TRUE
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *ProductRepository) ListByLocation(ctx context.Context, location string) ([]entity.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_made_in_my = TRUE AND location = $1
		ORDER BY created_at DESC, id DESC
	`, location)
}

func (r *ProductRepository) ListByTags(ctx context.Context, tags []string) ([]entity.Product, error) {
	// An empty filter means no tag filter at all, not zero results.
	if len(tags) == 0 {
		return r.List(ctx)
	}
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_made_in_my = TRUE AND tags && $1
		ORDER BY created_at DESC, id DESC
	`, tags)
}

func (r *ProductRepository) ListByAuthor(ctx context.Context, authorID string) ([]entity.Product, error) {
	// Authors see all of their submissions regardless of the locally-made flag.
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`, authorID)
}

// Update rewrites the mutable columns. ID, author_id and created_at are immutable.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, description = $2, url = $3, tags = $4, location = $5, is_made_in_my = $6
		WHERE id = $7
	`, p.Title, p.Description, p.URL, p.Tags, p.Location, p.IsMadeInMY, p.ID)
	if err != nil {
		return translateErr(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ProductRepository) ListWithVotes(ctx context.Context, viewerID *string) ([]entity.ProductWithVotes, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.description, p.url, p.tags, p.location, p.is_made_in_my, p.created_at, p.author_id,
		       COUNT(v.id) AS vote_count,
		       CASE WHEN $1::text IS NULL THEN NULL
		            ELSE EXISTS (SELECT 1 FROM votes uv WHERE uv.product_id = p.id AND uv.user_id = $1)
		       END AS user_voted
		FROM products p
		LEFT JOIN votes v ON v.product_id = p.id
		WHERE p.is_made_in_my = TRUE
		GROUP BY p.id
		ORDER BY COUNT(v.id) DESC, p.created_at DESC, p.id DESC
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWithVotes(rows)
}

func (r *ProductRepository) ListTrending(ctx context.Context, since time.Time) ([]entity.ProductWithVotes, error) {
	// Votes outside the window are excluded from the count via the join
	// condition, so products without recent votes still appear with zero.
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.description, p.url, p.tags, p.location, p.is_made_in_my, p.created_at, p.author_id,
		       COUNT(v.id) AS vote_count,
		       NULL::boolean AS user_voted
		FROM products p
		LEFT JOIN votes v ON v.product_id = p.id AND v.created_at >= $1
		WHERE p.is_made_in_my = TRUE
		GROUP BY p.id
		ORDER BY COUNT(v.id) DESC, p.created_at DESC, p.id DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWithVotes(rows)
}

func (r *ProductRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.URL, &p.Tags, &p.Location,
		&p.IsMadeInMY, &p.CreatedAt, &p.AuthorID); err != nil {
		return err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

func collectWithVotes(rows pgx.Rows) ([]entity.ProductWithVotes, error) {
	out := make([]entity.ProductWithVotes, 0)
	for rows.Next() {
		var pv entity.ProductWithVotes
		if err := rows.Scan(&pv.ID, &pv.Title, &pv.Description, &pv.URL, &pv.Tags, &pv.Location,
			&pv.IsMadeInMY, &pv.CreatedAt, &pv.AuthorID, &pv.VoteCount, &pv.UserVoted); err != nil {
			return nil, err
		}
		if pv.Tags == nil {
			pv.Tags = []string{}
		}
		out = append(out, pv)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
