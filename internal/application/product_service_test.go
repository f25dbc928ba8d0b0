package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/infrastructure/memory"
	"github.com/buatanmy/discovery-backend/pkg/patch"
)

func newProductService(t *testing.T) (*ProductService, *memory.Store, *entity.User) {
	t.Helper()
	store := memory.NewStore()
	author := &entity.User{ID: "author-1", Name: "Aina", Email: "aina@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Users().Create(context.Background(), author))
	svc := NewProductService(store.Products(), store.Users(), nil, nil, "")
	return svc, store, author
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _, author := newProductService(t)

	p, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title:       "KopiKita",
		Description: "Local coffee subscription",
		URL:         "https://kopikita.example.com",
		AuthorID:    author.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.Tags)
	assert.Empty(t, p.Tags)
	assert.True(t, p.IsMadeInMY)
	assert.Nil(t, p.Location)
}

func TestCreateProductMissingAuthor(t *testing.T) {
	svc, _, _ := newProductService(t)

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "x", Description: "y", URL: "https://z", AuthorID: "ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductExplicitForeign(t *testing.T) {
	svc, _, author := newProductService(t)

	foreign := false
	p, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "Imported", Description: "d", URL: "https://i", IsMadeInMY: &foreign, AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.False(t, p.IsMadeInMY)

	// foreign products are invisible on the main list but visible by id
	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
}

func TestGetProductAbsentIsNil(t *testing.T) {
	svc, _, _ := newProductService(t)

	p, err := svc.GetProduct(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateProductSparseMerge(t *testing.T) {
	svc, _, author := newProductService(t)
	loc := "Kuala Lumpur"
	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "KopiKita", Description: "d", URL: "https://k",
		Tags: []string{"coffee"}, Location: &loc, AuthorID: author.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Title: patch.Set("KopiKita 2.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, "KopiKita 2.0", updated.Title)
	assert.Equal(t, []string{"coffee"}, updated.Tags)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Kuala Lumpur", *updated.Location)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateProductEmptyTagsClears(t *testing.T) {
	svc, _, author := newProductService(t)
	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "KopiKita", Description: "d", URL: "https://k",
		Tags: []string{"coffee", "subscription"}, AuthorID: author.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Tags: patch.Set([]string{}),
	})
	require.NoError(t, err)
	assert.NotNil(t, updated.Tags)
	assert.Empty(t, updated.Tags)
}

func TestUpdateProductNullClearsLocation(t *testing.T) {
	svc, _, author := newProductService(t)
	loc := "Kuala Lumpur"
	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "KopiKita", Description: "d", URL: "https://k", Location: &loc, AuthorID: author.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductInput{
		Location: patch.Null[string](),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Location)
}

func TestUpdateProductMissing(t *testing.T) {
	svc, _, _ := newProductService(t)

	_, err := svc.UpdateProduct(context.Background(), "nope", UpdateProductInput{Title: patch.Set("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTrendingTimeframes(t *testing.T) {
	svc, store, author := newProductService(t)
	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Title: "KopiKita", Description: "d", URL: "https://k", AuthorID: author.ID,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	// one vote inside the daily window, one only inside the weekly window
	require.NoError(t, store.Votes().Create(context.Background(), &entity.Vote{
		ID: "v-fresh", UserID: author.ID, ProductID: created.ID, CreatedAt: now.Add(-time.Hour),
	}))
	other := &entity.User{ID: "u2", Name: "Daniel", Email: "daniel@example.com", CreatedAt: now}
	require.NoError(t, store.Users().Create(context.Background(), other))
	require.NoError(t, store.Votes().Create(context.Background(), &entity.Vote{
		ID: "v-stale", UserID: other.ID, ProductID: created.ID, CreatedAt: now.Add(-3 * 24 * time.Hour),
	}))

	daily, err := svc.ListTrendingProducts(context.Background(), TimeframeDaily)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 1, daily[0].VoteCount)

	weekly, err := svc.ListTrendingProducts(context.Background(), TimeframeWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	assert.Equal(t, 2, weekly[0].VoteCount)

	// empty timeframe falls back to daily
	def, err := svc.ListTrendingProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, def, 1)
	assert.Equal(t, 1, def[0].VoteCount)
}

func TestListTrendingUnknownTimeframe(t *testing.T) {
	svc, _, _ := newProductService(t)

	_, err := svc.ListTrendingProducts(context.Background(), "hourly")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchProductsWithoutES(t *testing.T) {
	svc, _, _ := newProductService(t)

	hits, err := svc.SearchProducts(context.Background(), "kopi", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
