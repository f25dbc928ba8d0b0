package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	repo "github.com/buatanmy/discovery-backend/internal/domain/repository"
	"github.com/buatanmy/discovery-backend/pkg/patch"
)

// Trending timeframes.
const (
	TimeframeDaily  = "daily"
	TimeframeWeekly = "weekly"
)

// ProductService implements the product domain operations plus the
// Elasticsearch-backed search supplement.
type ProductService struct {
	Repo            repo.ProductRepository
	Users           repo.UserRepository
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProductsIndex string
}

func NewProductService(r repo.ProductRepository, users repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *ProductService {
	return &ProductService{Repo: r, Users: users, Logger: logger, ES: es, ESProductsIndex: esIndex}
}

type CreateProductInput struct {
	Title       string
	Description string
	URL         string
	Tags        []string
	Location    *string
	IsMadeInMY  *bool // nil defaults to true
	AuthorID    string
}

// CreateProduct validates the author reference and persists the submission.
func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if _, err := s.Users.GetByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("author", in.AuthorID)
		}
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	madeInMY := true
	if in.IsMadeInMY != nil {
		madeInMY = *in.IsMadeInMY
	}

	p := &entity.Product{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Tags:        tags,
		Location:    in.Location,
		IsMadeInMY:  madeInMY,
		CreatedAt:   time.Now().UTC(),
		AuthorID:    in.AuthorID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, translateStoreErr(err, "duplicate product", "author", in.AuthorID)
	}

	_ = s.indexProduct(ctx, p)
	return p, nil
}

// GetProduct returns the product or nil when absent.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.Repo.List(ctx)
}

func (s *ProductService) ListProductsByLocation(ctx context.Context, location string) ([]entity.Product, error) {
	return s.Repo.ListByLocation(ctx, location)
}

func (s *ProductService) ListProductsByTags(ctx context.Context, tags []string) ([]entity.Product, error) {
	return s.Repo.ListByTags(ctx, tags)
}

func (s *ProductService) ListProductsByAuthor(ctx context.Context, authorID string) ([]entity.Product, error) {
	return s.Repo.ListByAuthor(ctx, authorID)
}

type UpdateProductInput struct {
	Title       patch.Field[string]
	Description patch.Field[string]
	URL         patch.Field[string]
	Tags        patch.Field[[]string]
	Location    patch.Field[string]
	IsMadeInMY  patch.Field[bool]
}

// UpdateProduct applies a sparse merge over the mutable fields. An explicit
// empty tag list replaces the stored tags; an absent one keeps them. The
// returned entity is re-read from the store after the write.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("product", id)
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if v, ok := in.Title.Get(); ok {
		p.Title = v
		changed = true
	}
	if v, ok := in.Description.Get(); ok {
		p.Description = v
		changed = true
	}
	if v, ok := in.URL.Get(); ok {
		p.URL = v
		changed = true
	}
	if v, ok := in.Tags.Get(); ok {
		if v == nil {
			v = []string{}
		}
		p.Tags = v
		changed = true
	}
	if v, ok := in.Location.Get(); ok {
		p.Location = &v
		changed = true
	} else if in.Location.IsNull() {
		p.Location = nil
		changed = true
	}
	if v, ok := in.IsMadeInMY.Get(); ok {
		p.IsMadeInMY = v
		changed = true
	}
	if !changed {
		return p, nil
	}

	if err := s.Repo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("product", id)
		}
		return nil, err
	}

	fresh, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.indexProduct(ctx, fresh)
	return fresh, nil
}

// ListProductsWithVotes returns locally made products with all-time vote
// counts, most voted first. viewerID controls the user_voted column: nil
// viewer yields null for every row.
func (s *ProductService) ListProductsWithVotes(ctx context.Context, viewerID *string) ([]entity.ProductWithVotes, error) {
	return s.Repo.ListWithVotes(ctx, viewerID)
}

// ListTrendingProducts ranks products by votes inside the trailing window:
// 24 hours for "daily" (the default), 7 days for "weekly".
func (s *ProductService) ListTrendingProducts(ctx context.Context, timeframe string) ([]entity.ProductWithVotes, error) {
	window := 24 * time.Hour
	switch timeframe {
	case "", TimeframeDaily:
	case TimeframeWeekly:
		window = 7 * 24 * time.Hour
	default:
		return nil, fmt.Errorf("timeframe %q: %w", timeframe, ErrInvalidInput)
	}
	return s.Repo.ListTrending(ctx, time.Now().UTC().Add(-window))
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) error {
	if s.ES == nil || s.ESProductsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":            p.ID,
		"title":         p.Title,
		"description":   p.Description,
		"url":           p.URL,
		"tags":          p.Tags,
		"location":      p.Location,
		"is_made_in_my": p.IsMadeInMY,
		"author_id":     p.AuthorID,
		"created_at":    p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
	return nil
}

// SearchProducts performs a simple multi_match search on title, description and tags.
func (s *ProductService) SearchProducts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "tags"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESProductsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = res.Body.Close()
	}()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}

	return out, nil
}
