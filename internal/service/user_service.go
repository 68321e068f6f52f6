package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/storage"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// ProfilePatch holds optional profile fields; nil fields stay untouched.
type ProfilePatch struct {
	Name   *string
	Email  *string
	Color  *string
	Active *bool
}

// UserService owns profile reads and mutations.
type UserService struct {
	users repository.UserRepository
	files storage.FileStore
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, files storage.FileStore) *UserService {
	return &UserService{users: users, files: files}
}

// GetByID loads a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// ListActive returns all active accounts in registration order.
func (s *UserService) ListActive(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

// UpdateProfile applies a partial patch to the user's profile. A present
// email must not collide with another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		user.Name = name
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if existing, err := s.users.GetByEmail(ctx, *patch.Email); err == nil && existing.ID != user.ID {
			return nil, apperrors.NewEmailTaken(*patch.Email)
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Color != nil {
		user.Color = *patch.Color
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores an image and records its URL on the user. Declared
// content types outside image/* are rejected before any write.
func (s *UserService) UploadAvatar(ctx context.Context, userID, fileName, contentType string, file io.Reader) (*domain.User, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, apperrors.NewUnsupportedMediaType(contentType)
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	url, err := s.files.Save("user_"+user.ID+ext, file)
	if err != nil {
		return nil, err
	}

	user.Avatar = &url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
