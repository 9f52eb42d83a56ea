package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/shared"
)

func mustUser(t *testing.T, repo *GormUserRepository, username, email string) *identity.User {
	t.Helper()

	u, err := identity.NewUser(username, email, "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func TestGormUserRepository_Find(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := mustUser(t, repo, "alice", "alice@example.com")

	t.Run("by ID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", found.Username)
	})

	t.Run("by username", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("by email is case insensitive", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Alice@Example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	mustUser(t, repo, "alice", "alice@example.com")
	bob := mustUser(t, repo, "bob", "bob@example.com")
	bob.PromoteToAdmin()
	require.NoError(t, repo.Save(ctx, bob))

	t.Run("lists users ordered by username", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "username"
		filter.OrderDir = "asc"

		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
		assert.Equal(t, "bob", users[1].Username)
	})

	t.Run("filters by role", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]any{"role": identity.RoleAdmin}

		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Username)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("searches by name fragment", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "ali"

		users, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := mustUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, u.ID), shared.ErrNotFound)
}
