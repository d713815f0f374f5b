package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
)

func TestGormUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user, err := identity.NewUser("shopper@example.com", "s3cret-pass", "Sam Shopper", identity.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))

	t.Run("finds by email case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "Shopper@Example.com")

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("reports existence by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "shopper@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists filtered by role", func(t *testing.T) {
		admin, err := identity.NewUser("admin@example.com", "s3cret-pass", "Ada Admin", identity.RoleAdmin)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, admin))

		filter := shared.NewFilter()
		filter.Filters["role"] = string(identity.RoleAdmin)
		users, total, err := repo.List(ctx, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, admin.ID, users[0].ID)
	})
}
