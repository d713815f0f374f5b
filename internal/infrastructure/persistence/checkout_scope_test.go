package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apporder "github.com/freshmart/backend/internal/application/order"
	"github.com/freshmart/backend/internal/domain/cart"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
)

const testShippingAddress = "12 Market Street, Springfield"

func buildOrder(t *testing.T, customerID uuid.UUID, product *catalog.Product, quantity int) *order.Order {
	t.Helper()

	o, err := order.NewOrder(customerID, testShippingAddress, "5551234567", "CARD", []order.Draft{{
		ProductID:   product.ID,
		VendorID:    product.VendorID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}})
	require.NoError(t, err)
	return o
}

func stockOf(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()

	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.Stock
}

func TestGormCheckoutScope_CommitsAllWrites(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormCheckoutScope(db)
	ctx := context.Background()

	customerID := uuid.New()
	product := seedProduct(t, db, "Free Range Eggs", "5.00", 10, catalog.StatusApproved)

	line, err := cart.NewLine(customerID, product.ID, 3)
	require.NoError(t, err)
	require.NoError(t, db.Save(line).Error)

	placed := buildOrder(t, customerID, product, 3)

	err = scope.Execute(ctx, func(repos apporder.CheckoutRepositories) error {
		if err := repos.Orders().Save(ctx, placed); err != nil {
			return err
		}
		if err := repos.Stock().DecrementStock(ctx, product.ID, 3); err != nil {
			return err
		}
		return repos.CartLines().DeleteByCustomer(ctx, customerID)
	})
	require.NoError(t, err)

	saved, err := NewGormOrderRepository(db).FindByID(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	require.NotNil(t, saved.Payment)
	assert.Equal(t, order.PaymentStatusCompleted, saved.Payment.Status)
	assert.True(t, decimal.RequireFromString("15.00").Equal(saved.TotalAmount))

	assert.Equal(t, 7, stockOf(t, db, product.ID))

	lines, err := NewGormCartLineRepository(db).FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestGormCheckoutScope_RollsBackOnStockFailure(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormCheckoutScope(db)
	ctx := context.Background()

	customerID := uuid.New()
	product := seedProduct(t, db, "Wild Honey", "12.00", 2, catalog.StatusApproved)

	line, err := cart.NewLine(customerID, product.ID, 5)
	require.NoError(t, err)
	require.NoError(t, db.Save(line).Error)

	placed := buildOrder(t, customerID, product, 5)

	err = scope.Execute(ctx, func(repos apporder.CheckoutRepositories) error {
		if err := repos.Orders().Save(ctx, placed); err != nil {
			return err
		}
		if err := repos.Stock().DecrementStock(ctx, product.ID, 5); err != nil {
			return err
		}
		return repos.CartLines().DeleteByCustomer(ctx, customerID)
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeInsufficientStock, domainErr.Code)

	// nothing from the transaction survives
	_, err = NewGormOrderRepository(db).FindByID(ctx, placed.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Equal(t, 2, stockOf(t, db, product.ID))

	lines, err := NewGormCartLineRepository(db).FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestGormStockDecrementer_NeverDrivesStockNegative(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := seedProduct(t, db, "Heirloom Tomatoes", "4.00", 5, catalog.StatusApproved)
	dec := &gormStockDecrementer{tx: db}

	require.NoError(t, dec.DecrementStock(ctx, product.ID, 3))

	err := dec.DecrementStock(ctx, product.ID, 3)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeInsufficientStock, domainErr.Code)

	assert.Equal(t, 2, stockOf(t, db, product.ID))
}

func TestGormCheckoutScope_PropagatesCallbackError(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormCheckoutScope(db)

	boom := errors.New("boom")
	err := scope.Execute(context.Background(), func(repos apporder.CheckoutRepositories) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
}
