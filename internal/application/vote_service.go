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

// VoteService implements vote creation and retraction.
type VoteService struct {
	Repo     repo.VoteRepository
	Users    repo.UserRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
	Notify   Publisher
}

func NewVoteService(r repo.VoteRepository, users repo.UserRepository, products repo.ProductRepository, logger *logrus.Logger, notify Publisher) *VoteService {
	return &VoteService{Repo: r, Users: users, Products: products, Logger: logger, Notify: notify}
}

type CreateVoteInput struct {
	UserID    string
	ProductID string
}

// CreateVote records a vote after checking both references and the
// one-vote-per-user-per-product rule. The unique index on
// (user_id, product_id) settles concurrent duplicates.
func (s *VoteService) CreateVote(ctx context.Context, in CreateVoteInput) (*entity.Vote, error) {
	voter, err := s.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("user", in.UserID)
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

	exists, err := s.Repo.Exists(ctx, in.UserID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("duplicate vote")
	}

	v := &entity.Vote{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		ProductID: in.ProductID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, translateStoreErr(err, "duplicate vote", "vote reference", in.ProductID)
	}

	s.notifyAuthor(ctx, voter, product)
	return v, nil
}

// DeleteVote retracts the vote for the pair and reports whether a row was
// removed. Retracting an absent vote is a no-op, not an error.
func (s *VoteService) DeleteVote(ctx context.Context, userID, productID string) (bool, error) {
	return s.Repo.Delete(ctx, userID, productID)
}

// notifyAuthor queues an email to the product author. Best-effort: the vote
// has already been persisted, a delivery failure is only logged.
func (s *VoteService) notifyAuthor(ctx context.Context, voter *entity.User, product *entity.Product) {
	if s.Notify == nil || product.AuthorID == voter.ID {
		return
	}
	author, err := s.Users.GetByID(ctx, product.AuthorID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("author_id", product.AuthorID).Warn("load author for vote notification failed")
		}
		return
	}
	job := mailer.NotifyJob{
		To:      author.Email,
		Subject: fmt.Sprintf("%s got a new vote", product.Title),
		Text:    fmt.Sprintf("%s voted for %s.", voter.Name, product.Title),
	}
	if err := s.Notify.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("product_id", product.ID).Warn("publish vote notification failed")
	}
}
