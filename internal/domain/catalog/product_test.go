package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	vendorID := uuid.New()
	categoryID := uuid.New()

	t.Run("starts pending", func(t *testing.T) {
		product, err := NewProduct(vendorID, categoryID, "Organic Apples", "crisp", decimal.NewFromFloat(3.50), 100, "")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, product.Status)
		assert.False(t, product.IsApproved())
		assert.True(t, product.IsOwnedBy(vendorID))
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := NewProduct(vendorID, categoryID, "Organic Apples", "", decimal.Zero, 100, "")
		assert.Error(t, err)

		_, err = NewProduct(vendorID, categoryID, "Organic Apples", "", decimal.NewFromFloat(-1), 100, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(vendorID, categoryID, "Organic Apples", "", decimal.NewFromFloat(3.50), -1, "")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(vendorID, categoryID, "  ", "", decimal.NewFromFloat(3.50), 10, "")
		assert.Error(t, err)
	})
}

func TestProductUpdate(t *testing.T) {
	t.Run("vendor edit resets status to pending", func(t *testing.T) {
		product, err := NewProduct(uuid.New(), uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 100, "")
		require.NoError(t, err)
		require.NoError(t, product.SetStatus(StatusApproved))
		require.True(t, product.IsApproved())

		err = product.Update(product.CategoryID, "Organic Apples", "now crisper", decimal.NewFromFloat(3.75), 90, "")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, product.Status)
		assert.Equal(t, "3.75", product.Price.StringFixed(2))
	})
}

func TestNewReview(t *testing.T) {
	t.Run("accepts ratings in range", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			_, err := NewReview(uuid.New(), uuid.New(), rating, "good")
			assert.NoError(t, err)
		}
	})

	t.Run("rejects out of range ratings", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), 0, "")
		assert.Error(t, err)

		_, err = NewReview(uuid.New(), uuid.New(), 6, "")
		assert.Error(t, err)
	})
}
