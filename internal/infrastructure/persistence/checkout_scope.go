package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apporder "github.com/freshmart/backend/internal/application/order"
	"github.com/freshmart/backend/internal/domain/cart"
	"github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
)

// GormCheckoutScope implements CheckoutScope using GORM transactions.
// It provides atomic execution of the order, stock and cart writes
// that make up a checkout.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos apporder.CheckoutRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

// gormCheckoutRepositories provides the checkout repositories scoped
// to the current transaction.
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

// Stock returns the stock decrementer scoped to the current transaction
func (r *gormCheckoutRepositories) Stock() apporder.StockDecrementer {
	return &gormStockDecrementer{tx: r.tx}
}

// CartLines returns the cart line repository scoped to the current transaction
func (r *gormCheckoutRepositories) CartLines() cart.LineRepository {
	return NewGormCartLineRepository(r.tx)
}

// gormStockDecrementer performs conditional stock decrements
type gormStockDecrementer struct {
	tx *gorm.DB
}

// DecrementStock reduces a product's stock by quantity. The update is
// guarded so the row only changes when enough stock remains; zero rows
// affected means another checkout took the stock first.
func (d *gormStockDecrementer) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := d.tx.WithContext(ctx).Exec(
		"UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND stock >= ?",
		quantity, productID, quantity,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.ErrCodeInsufficientStock, "insufficient stock")
	}
	return nil
}

// Ensure GormCheckoutScope implements CheckoutScope
var _ apporder.CheckoutScope = (*GormCheckoutScope)(nil)

// Ensure gormCheckoutRepositories implements CheckoutRepositories
var _ apporder.CheckoutRepositories = (*gormCheckoutRepositories)(nil)
