package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/storage"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

func newUserTestService(t *testing.T) (*UserService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	files, err := storage.NewLocalStore(t.TempDir(), "/static/uploads")
	require.NoError(t, err)
	return NewUserService(store.Users(), files), store
}

func seedUser(t *testing.T, store *repository.MemoryStore, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Color:        domain.DefaultUserColor,
		Active:       true,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	svc, store := newUserTestService(t)
	ctx := context.Background()
	user := seedUser(t, store, "Ana", "ana@example.com")

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{Color: strPtr("bg-pink-500")})
	require.NoError(t, err)
	require.Equal(t, "bg-pink-500", updated.Color)
	require.Equal(t, "Ana", updated.Name)
	require.Equal(t, "ana@example.com", updated.Email)
	require.True(t, updated.Active)
}

func TestUserService_UpdateProfileEmailConflict(t *testing.T) {
	svc, store := newUserTestService(t)
	ctx := context.Background()
	seedUser(t, store, "Ana", "ana@example.com")
	other := seedUser(t, store, "Bob", "bob@example.com")

	_, err := svc.UpdateProfile(ctx, other.ID, ProfilePatch{Email: strPtr("ana@example.com")})
	require.Equal(t, "EMAIL_TAKEN", apperrors.ToDomainError(err).Code)
}

func TestUserService_Deactivate(t *testing.T) {
	svc, store := newUserTestService(t)
	ctx := context.Background()
	user := seedUser(t, store, "Ana", "ana@example.com")

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{Active: boolPtr(false)})
	require.NoError(t, err)
	require.False(t, updated.Active)

	// deactivated accounts drop out of the public listing but still exist
	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	fetched, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, fetched.Active)
}

func TestUserService_UploadAvatar(t *testing.T) {
	svc, store := newUserTestService(t)
	ctx := context.Background()
	user := seedUser(t, store, "Ana", "ana@example.com")

	updated, err := svc.UploadAvatar(ctx, user.ID, "me.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)
	require.Equal(t, "/static/uploads/user_"+user.ID+".png", *updated.Avatar)
}

func TestUserService_UploadAvatarRejectsNonImage(t *testing.T) {
	svc, store := newUserTestService(t)
	ctx := context.Background()
	user := seedUser(t, store, "Ana", "ana@example.com")

	_, err := svc.UploadAvatar(ctx, user.ID, "notes.txt", "text/plain", strings.NewReader("hello"))
	require.Equal(t, "UNSUPPORTED_MEDIA_TYPE", apperrors.ToDomainError(err).Code)

	// nothing recorded on the profile
	fetched, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, fetched.Avatar)
}
