package memory

import (
	"context"
	"testing"

	"todo-tracker/internal/models"
	"todo-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user, err := repo.Create(ctx, &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hashed", found.Password)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDuplicate(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)

	_, err = repo.Create(ctx, &models.User{Username: "other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)
}

func TestUserExistsByUsernameOrEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "alice", "new@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "new", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "new", "new@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
