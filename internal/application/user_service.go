package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/buatanmy/discovery-backend/internal/domain/entity"
	repo "github.com/buatanmy/discovery-backend/internal/domain/repository"
	"github.com/buatanmy/discovery-backend/pkg/helpers"
	"github.com/buatanmy/discovery-backend/pkg/patch"
)

// UserService implements the user domain operations. The store is injected
// through the repository interface so tests can run against the in-memory
// implementation.
type UserService struct {
	Repo      repo.UserRepository
	Logger    *logrus.Logger
	GCS       *storage.Client
	GCSBucket string
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, gcs *storage.Client, gcsBucket string) *UserService {
	return &UserService{Repo: r, Logger: logger, GCS: gcs, GCSBucket: gcsBucket}
}

type CreateUserInput struct {
	Name      string
	Email     string
	AvatarURL *string
	Location  *string
}

// CreateUser registers a user. Email uniqueness is pre-checked for a friendly
// error; the unique index on users.email is the authoritative guard.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, conflict("email exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		AvatarURL: in.AvatarURL,
		Location:  in.Location,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, translateStoreErr(err, "email exists", "user", u.ID)
	}
	return u, nil
}

// GetUser returns the user or nil when absent; a missing user is not an
// error on reads.
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

type UpdateUserInput struct {
	Name      patch.Field[string]
	AvatarURL patch.Field[string]
	Location  patch.Field[string]
}

// UpdateUser applies a sparse merge: only fields present in the input change;
// explicit null clears nullable fields; id, email and created_at never move.
// The returned entity is re-read from the store after the write.
func (s *UserService) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if v, ok := in.Name.Get(); ok {
		u.Name = v
		changed = true
	}
	if v, ok := in.AvatarURL.Get(); ok {
		u.AvatarURL = &v
		changed = true
	} else if in.AvatarURL.IsNull() {
		u.AvatarURL = nil
		changed = true
	}
	if v, ok := in.Location.Get(); ok {
		u.Location = &v
		changed = true
	} else if in.Location.IsNull() {
		u.Location = nil
		changed = true
	}
	if !changed {
		return u, nil
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("user", id)
		}
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// UploadAvatar stores the image in GCS and points the user's avatar_url at it.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return "", notFound("user", userID)
	}
	if err != nil {
		return "", err
	}

	url, err := s.uploadImageToGCS(ctx, userID, r, filename, contentType)
	if err != nil {
		return "", err
	}
	u.AvatarURL = &url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) uploadImageToGCS(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, id+ext))
	return helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}
