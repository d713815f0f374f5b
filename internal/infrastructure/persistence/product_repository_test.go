package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
)

func seedProduct(t *testing.T, db *gorm.DB, name string, price string, stock int, status catalog.Status) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(
		uuid.New(), uuid.New(), name, "fresh from the farm",
		decimal.RequireFromString(price), stock, "",
	)
	require.NoError(t, err)
	product.Status = status
	require.NoError(t, db.Save(product).Error)
	return product
}

func TestGormProductRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	t.Run("finds existing product", func(t *testing.T) {
		product := seedProduct(t, db, "Gala Apples", "3.50", 10, catalog.StatusApproved)

		found, err := repo.FindByID(ctx, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
		assert.Equal(t, "Gala Apples", found.Name)
		assert.True(t, decimal.RequireFromString("3.50").Equal(found.Price))
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	approved := seedProduct(t, db, "Organic Bananas", "2.00", 50, catalog.StatusApproved)
	seedProduct(t, db, "Pending Mangoes", "4.00", 20, catalog.StatusPending)
	cheap := seedProduct(t, db, "Carrots", "0.99", 100, catalog.StatusApproved)

	t.Run("filters by status", func(t *testing.T) {
		listings, total, err := repo.Search(ctx, catalog.ProductSearch{
			Statuses: []catalog.Status{catalog.StatusApproved},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, listings, 2)
		for _, listing := range listings {
			assert.Equal(t, catalog.StatusApproved, listing.Product.Status)
		}
	})

	t.Run("filters by name query", func(t *testing.T) {
		listings, total, err := repo.Search(ctx, catalog.ProductSearch{
			Query:    "banana",
			Statuses: []catalog.Status{catalog.StatusApproved},
		})

		// sqlite LIKE is case-insensitive for ASCII
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, approved.ID, listings[0].Product.ID)
	})

	t.Run("filters by price range", func(t *testing.T) {
		max := decimal.RequireFromString("1.50")
		listings, total, err := repo.Search(ctx, catalog.ProductSearch{
			MaxPrice: &max,
			Statuses: []catalog.Status{catalog.StatusApproved},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listings, 1)
		assert.Equal(t, cheap.ID, listings[0].Product.ID)
	})

	t.Run("sorts by price ascending", func(t *testing.T) {
		listings, _, err := repo.Search(ctx, catalog.ProductSearch{
			Statuses: []catalog.Status{catalog.StatusApproved},
			OrderBy:  "price",
			OrderDir: "asc",
		})

		require.NoError(t, err)
		require.Len(t, listings, 2)
		assert.Equal(t, cheap.ID, listings[0].Product.ID)
		assert.Equal(t, approved.ID, listings[1].Product.ID)
	})

	t.Run("rejects unknown sort field", func(t *testing.T) {
		_, _, err := repo.Search(ctx, catalog.ProductSearch{
			OrderBy: "price; DROP TABLE products",
		})

		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&catalog.Product{}).Count(&count).Error)
		assert.Equal(t, int64(3), count)
	})

	t.Run("paginates", func(t *testing.T) {
		listings, total, err := repo.Search(ctx, catalog.ProductSearch{
			Page:     2,
			PageSize: 2,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, listings, 1)
	})
}

func TestGormProductRepository_Ratings(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Sourdough Loaf", "6.50", 12, catalog.StatusApproved)

	t.Run("zero summary without reviews", func(t *testing.T) {
		summary, err := repo.RatingFor(ctx, product.ID)

		require.NoError(t, err)
		assert.Zero(t, summary.AverageRating)
		assert.Zero(t, summary.ReviewCount)
	})

	t.Run("aggregates ratings", func(t *testing.T) {
		for _, rating := range []int{5, 4} {
			review, err := catalog.NewReview(product.ID, uuid.New(), rating, "good bread")
			require.NoError(t, err)
			require.NoError(t, reviews.Save(ctx, review))
		}

		summary, err := repo.RatingFor(ctx, product.ID)

		require.NoError(t, err)
		assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
		assert.Equal(t, int64(2), summary.ReviewCount)
	})

	t.Run("search includes rating aggregates", func(t *testing.T) {
		listings, _, err := repo.Search(ctx, catalog.ProductSearch{
			Statuses: []catalog.Status{catalog.StatusApproved},
		})

		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.InDelta(t, 4.5, listings[0].Rating.AverageRating, 0.001)
		assert.Equal(t, int64(2), listings[0].Rating.ReviewCount)
	})
}

func TestGormReviewRepository_ExistsByProductAndCustomer(t *testing.T) {
	db := newTestDB(t)
	reviews := NewGormReviewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Cheddar", "8.00", 5, catalog.StatusApproved)
	customerID := uuid.New()

	exists, err := reviews.ExistsByProductAndCustomer(ctx, product.ID, customerID)
	require.NoError(t, err)
	assert.False(t, exists)

	review, err := catalog.NewReview(product.ID, customerID, 5, "sharp")
	require.NoError(t, err)
	require.NoError(t, reviews.Save(ctx, review))

	exists, err = reviews.ExistsByProductAndCustomer(ctx, product.ID, customerID)
	require.NoError(t, err)
	assert.True(t, exists)
}
