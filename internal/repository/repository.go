package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/todo-service/internal/domain"
)

// ErrNotFound is returned when a record does not exist, or exists outside
// the caller's ownership scope. Store implementations map their own
// not-found sentinels onto it.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
}

// TodoRepository defines persistence access for todos. Every read or write
// is scoped by owner id; a todo owned by someone else behaves as absent.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	Update(ctx context.Context, todo *domain.Todo) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}
