package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	repo "github.com/buatanmy/discovery-backend/internal/domain/repository"
	"github.com/buatanmy/discovery-backend/pkg/mailer"
)

// CommentService implements comment creation, listing and updates.
type CommentService struct {
	Repo     repo.CommentRepository
	Users    repo.UserRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
	Notify   Publisher
}

func NewCommentService(r repo.CommentRepository, users repo.UserRepository, products repo.ProductRepository, logger *logrus.Logger, notify Publisher) *CommentService {
	return &CommentService{Repo: r, Users: users, Products: products, Logger: logger, Notify: notify}
}

type CreateCommentInput struct {
	Content   string
	AuthorID  string
	ProductID string
}

// CreateComment persists a comment after checking both references.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*entity.Comment, error) {
	author, err := s.Users.GetByID(ctx, in.AuthorID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("author", in.AuthorID)
	}
	if err != nil {
		return nil, err
	}

	product, err := s.Products.GetByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("product", in.ProductID)
	}
	if err != nil {
		return nil, err
	}

	c := &entity.Comment{
		ID:        uuid.NewString(),
		Content:   in.Content,
		AuthorID:  in.AuthorID,
		ProductID: in.ProductID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, translateStoreErr(err, "duplicate comment", "comment reference", in.ProductID)
	}

	s.notifyProductAuthor(ctx, author, product)
	return c, nil
}

// ListCommentsByProduct returns a product's comments, newest first.
func (s *CommentService) ListCommentsByProduct(ctx context.Context, productID string) ([]entity.Comment, error) {
	return s.Repo.ListByProduct(ctx, productID)
}

// UpdateComment replaces the content; everything else is immutable. The
// returned entity is re-read from the store after the write.
func (s *CommentService) UpdateComment(ctx context.Context, id, content string) (*entity.Comment, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("comment", id)
	}
	if err != nil {
		return nil, err
	}

	c.Content = content
	if err := s.Repo.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *CommentService) notifyProductAuthor(ctx context.Context, commenter *entity.User, product *entity.Product) {
	if s.Notify == nil || product.AuthorID == commenter.ID {
		return
	}
	author, err := s.Users.GetByID(ctx, product.AuthorID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("author_id", product.AuthorID).Warn("load author for comment notification failed")
		}
		return
	}
	job := mailer.NotifyJob{
		To:      author.Email,
		Subject: fmt.Sprintf("New comment on %s", product.Title),
		Text:    fmt.Sprintf("%s commented on %s.", commenter.Name, product.Title),
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", product.ID).Warn("publish comment notification failed")
	}
}
