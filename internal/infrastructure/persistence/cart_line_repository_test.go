package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/backend/internal/domain/cart"
	"github.com/freshmart/backend/internal/domain/shared"
)

func TestGormCartLineRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCartLineRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	productID := uuid.New()

	line, err := cart.NewLine(customerID, productID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, line))

	t.Run("finds line by customer and product", func(t *testing.T) {
		found, err := repo.FindByCustomerAndProduct(ctx, customerID, productID)

		require.NoError(t, err)
		assert.Equal(t, line.ID, found.ID)
		assert.Equal(t, 2, found.Quantity)
	})

	t.Run("lists only the customer's lines", func(t *testing.T) {
		other, err := cart.NewLine(uuid.New(), productID, 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		lines, err := repo.FindByCustomer(ctx, customerID)

		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, line.ID, lines[0].ID)
	})

	t.Run("delete reports missing line", func(t *testing.T) {
		err := repo.Delete(ctx, customerID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("clears the whole cart", func(t *testing.T) {
		second, err := cart.NewLine(customerID, uuid.New(), 4)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, second))

		require.NoError(t, repo.DeleteByCustomer(ctx, customerID))

		lines, err := repo.FindByCustomer(ctx, customerID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}
