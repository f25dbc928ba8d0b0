package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	"github.com/buatanmy/discovery-backend/internal/domain/repository"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s *Store, id, email string) {
	t.Helper()
	err := s.Users().Create(context.Background(), &entity.User{
		ID:        id,
		Name:      "user " + id,
		Email:     email,
		CreatedAt: base,
	})
	require.NoError(t, err)
}

func seedProduct(t *testing.T, s *Store, id, author string, createdAt time.Time, mut ...func(*entity.Product)) {
	t.Helper()
	p := &entity.Product{
		ID:          id,
		Title:       "product " + id,
		Description: "desc",
		URL:         "https://example.com/" + id,
		Tags:        []string{},
		IsMadeInMY:  true,
		CreatedAt:   createdAt,
		AuthorID:    author,
	}
	for _, m := range mut {
		m(p)
	}
	require.NoError(t, s.Products().Create(context.Background(), p))
}

func seedVote(t *testing.T, s *Store, id, user, product string, createdAt time.Time) {
	t.Helper()
	err := s.Votes().Create(context.Background(), &entity.Vote{
		ID: id, UserID: user, ProductID: product, CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func productIDs(ps []entity.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func rankedIDs(ps []entity.ProductWithVotes) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestUserEmailUnique(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")

	err := s.Users().Create(context.Background(), &entity.User{ID: "u2", Email: "a@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestProductCreateMissingAuthor(t *testing.T) {
	s := NewStore()
	err := s.Products().Create(context.Background(), &entity.Product{ID: "p1", AuthorID: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListOrderingAndLocalFilter(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p-old", "u1", base.Add(-2*time.Hour))
	seedProduct(t, s, "p-new", "u1", base)
	seedProduct(t, s, "p-foreign", "u1", base.Add(time.Hour), func(p *entity.Product) {
		p.IsMadeInMY = false
	})

	got, err := s.Products().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p-new", "p-old"}, productIDs(got))
}

func TestListTiebreakOnEqualTimestamps(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p-a", "u1", base)
	seedProduct(t, s, "p-b", "u1", base)

	got, err := s.Products().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p-b", "p-a"}, productIDs(got))
}

func TestListByLocation(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	kl := "Kuala Lumpur"
	seedProduct(t, s, "p-kl", "u1", base, func(p *entity.Product) { p.Location = &kl })
	seedProduct(t, s, "p-none", "u1", base)

	got, err := s.Products().ListByLocation(context.Background(), "Kuala Lumpur")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-kl"}, productIDs(got))

	got, err = s.Products().ListByLocation(context.Background(), "Penang")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListByTagsOverlap(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p-coffee", "u1", base, func(p *entity.Product) { p.Tags = []string{"coffee", "subscription"} })
	seedProduct(t, s, "p-books", "u1", base.Add(time.Minute), func(p *entity.Product) { p.Tags = []string{"books"} })

	got, err := s.Products().ListByTags(context.Background(), []string{"coffee", "groceries"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-coffee"}, productIDs(got))

	// empty filter means no filter
	got, err = s.Products().ListByTags(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-books", "p-coffee"}, productIDs(got))
}

func TestListByAuthorIncludesForeign(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedUser(t, s, "u2", "b@example.com")
	seedProduct(t, s, "p-mine", "u1", base)
	seedProduct(t, s, "p-foreign", "u1", base.Add(time.Minute), func(p *entity.Product) {
		p.IsMadeInMY = false
	})
	seedProduct(t, s, "p-other", "u2", base)

	got, err := s.Products().ListByAuthor(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-foreign", "p-mine"}, productIDs(got))
}

func TestVoteUniquePerUserProduct(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p1", "u1", base)
	seedVote(t, s, "v1", "u1", "p1", base)

	err := s.Votes().Create(context.Background(), &entity.Vote{ID: "v2", UserID: "u1", ProductID: "p1", CreatedAt: base})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestVoteDeleteReportsRemoval(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p1", "u1", base)
	seedVote(t, s, "v1", "u1", "p1", base)

	deleted, err := s.Votes().Delete(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Votes().Delete(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListWithVotesRankingAndViewer(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedUser(t, s, "u2", "b@example.com")
	seedUser(t, s, "u3", "c@example.com")
	seedProduct(t, s, "p-hot", "u1", base.Add(-time.Hour))
	seedProduct(t, s, "p-cold", "u1", base)
	seedVote(t, s, "v1", "u1", "p-hot", base)
	seedVote(t, s, "v2", "u2", "p-hot", base)
	seedVote(t, s, "v3", "u3", "p-cold", base)

	viewer := "u2"
	got, err := s.Products().ListWithVotes(context.Background(), &viewer)
	require.NoError(t, err)
	require.Equal(t, []string{"p-hot", "p-cold"}, rankedIDs(got))
	assert.Equal(t, 2, got[0].VoteCount)
	require.NotNil(t, got[0].UserVoted)
	assert.True(t, *got[0].UserVoted)
	require.NotNil(t, got[1].UserVoted)
	assert.False(t, *got[1].UserVoted)
}

func TestListWithVotesAnonymousViewer(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p1", "u1", base)
	seedVote(t, s, "v1", "u1", "p1", base)

	got, err := s.Products().ListWithVotes(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].UserVoted)
	assert.Equal(t, 1, got[0].VoteCount)
}

func TestListTrendingCountsWindowOnly(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedUser(t, s, "u2", "b@example.com")
	seedProduct(t, s, "p-steady", "u1", base.Add(-48*time.Hour))
	seedProduct(t, s, "p-rising", "u1", base.Add(-47*time.Hour))
	// p-steady has an old vote and a fresh one, p-rising two fresh ones
	seedVote(t, s, "v1", "u1", "p-steady", base.Add(-30*time.Hour))
	seedVote(t, s, "v2", "u2", "p-steady", base.Add(-time.Hour))
	seedVote(t, s, "v3", "u1", "p-rising", base.Add(-2*time.Hour))
	seedVote(t, s, "v4", "u2", "p-rising", base.Add(-time.Hour))

	got, err := s.Products().ListTrending(context.Background(), base.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []string{"p-rising", "p-steady"}, rankedIDs(got))
	assert.Equal(t, 2, got[0].VoteCount)
	assert.Equal(t, 1, got[1].VoteCount)
	assert.Nil(t, got[0].UserVoted)
}

func TestListTrendingKeepsZeroVoteProducts(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p-quiet", "u1", base)

	got, err := s.Products().ListTrending(context.Background(), base.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []string{"p-quiet"}, rankedIDs(got))
	assert.Equal(t, 0, got[0].VoteCount)
}

func TestCommentListNewestFirst(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p1", "u1", base)
	require.NoError(t, s.Comments().Create(context.Background(), &entity.Comment{
		ID: "c-old", Content: "first", AuthorID: "u1", ProductID: "p1", CreatedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, s.Comments().Create(context.Background(), &entity.Comment{
		ID: "c-new", Content: "second", AuthorID: "u1", ProductID: "p1", CreatedAt: base,
	}))

	got, err := s.Comments().ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c-new", got[0].ID)
	assert.Equal(t, "c-old", got[1].ID)
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "u1", "a@example.com")
	seedProduct(t, s, "p1", "u1", base, func(p *entity.Product) { p.Tags = []string{"coffee"} })

	got, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee"}, again.Tags)
}
