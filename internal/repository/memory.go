package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/todo-service/internal/domain"
)

// MemoryStore is an in-process implementation of both repositories. It backs
// the service when no Postgres DSN is configured and the package tests.
// Insertion order is preserved for listings.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []*domain.User
	todos     []*domain.Todo
	userIndex map[string]*domain.User
	todoIndex map[string]*domain.Todo
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		userIndex: make(map[string]*domain.User),
		todoIndex: make(map[string]*domain.Todo),
	}
}

// Users returns the store's UserRepository view.
func (s *MemoryStore) Users() UserRepository { return (*memoryUserRepo)(s) }

// Todos returns the store's TodoRepository view.
func (s *MemoryStore) Todos() TodoRepository { return (*memoryTodoRepo)(s) }

type memoryUserRepo MemoryStore

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users = append(r.users, &stored)
	r.userIndex[stored.ID] = &stored
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.userIndex[user.ID]
	if !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	user.CreatedAt = stored.CreatedAt
	*stored = *user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.userIndex[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, stored := range r.users {
		if stored.Email == email {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.User
	for _, stored := range r.users {
		if stored.Active {
			result = append(result, *stored)
		}
	}
	return result, nil
}

type memoryTodoRepo MemoryStore

func (r *memoryTodoRepo) Create(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	todo.ID = uuid.NewString()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	stored := *todo
	r.todos = append(r.todos, &stored)
	r.todoIndex[stored.ID] = &stored
	return nil
}

func (r *memoryTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.todoIndex[todo.ID]
	if !ok || stored.OwnerID != todo.OwnerID {
		return ErrNotFound
	}
	todo.UpdatedAt = time.Now()
	todo.CreatedAt = stored.CreatedAt
	*stored = *todo
	return nil
}

func (r *memoryTodoRepo) GetByID(_ context.Context, ownerID, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.todoIndex[id]
	if !ok || stored.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *memoryTodoRepo) ListByOwner(_ context.Context, ownerID string, offset, limit int) ([]domain.Todo, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Todo
	skipped := 0
	for _, stored := range r.todos {
		if stored.OwnerID != ownerID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(result) == limit {
			break
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memoryTodoRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.todoIndex[id]
	if !ok || stored.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.todoIndex, id)
	for i, t := range r.todos {
		if t.ID == id {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			break
		}
	}
	return nil
}
