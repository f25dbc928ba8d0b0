package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buatanmy/discovery-backend/internal/infrastructure/memory"
)

func TestCreateComment(t *testing.T) {
	store := memory.NewStore()
	_, commenter, product := seedVoteFixture(t, store)
	pub := &capturePublisher{}
	svc := NewCommentService(store.Comments(), store.Users(), store.Products(), nil, pub)

	c, err := svc.CreateComment(context.Background(), CreateCommentInput{
		Content: "Love this!", AuthorID: commenter.ID, ProductID: product.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, "Love this!", c.Content)

	require.Len(t, pub.jobs, 1)
	assert.Equal(t, "aina@example.com", pub.jobs[0].To)
}

func TestCreateCommentMissingRefs(t *testing.T) {
	store := memory.NewStore()
	_, commenter, product := seedVoteFixture(t, store)
	svc := NewCommentService(store.Comments(), store.Users(), store.Products(), nil, nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		Content: "x", AuthorID: "ghost", ProductID: product.ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{
		Content: "x", AuthorID: commenter.ID, ProductID: "ghost",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsByProduct(t *testing.T) {
	store := memory.NewStore()
	_, commenter, product := seedVoteFixture(t, store)
	svc := NewCommentService(store.Comments(), store.Users(), store.Products(), nil, nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		Content: "first", AuthorID: commenter.ID, ProductID: product.ID,
	})
	require.NoError(t, err)

	got, err := svc.ListCommentsByProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Content)

	// unknown product simply has no comments
	got, err = svc.ListCommentsByProduct(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateComment(t *testing.T) {
	store := memory.NewStore()
	_, commenter, product := seedVoteFixture(t, store)
	svc := NewCommentService(store.Comments(), store.Users(), store.Products(), nil, nil)

	created, err := svc.CreateComment(context.Background(), CreateCommentInput{
		Content: "first", AuthorID: commenter.ID, ProductID: product.ID,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateComment(context.Background(), created.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateCommentMissing(t *testing.T) {
	store := memory.NewStore()
	svc := NewCommentService(store.Comments(), store.Users(), store.Products(), nil, nil)

	_, err := svc.UpdateComment(context.Background(), "ghost", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
