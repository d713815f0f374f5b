package order

import (
	"context"

	"github.com/google/uuid"

	domaincart "github.com/freshmart/backend/internal/domain/cart"
	domainorder "github.com/freshmart/backend/internal/domain/order"
)

// StockDecrementer atomically reduces a product's stock. The decrement
// must be conditional on sufficient remaining stock and fail with
// INSUFFICIENT_STOCK otherwise, so concurrent checkouts can never
// drive stock negative.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// CheckoutRepositories are the repositories bound to one checkout
// transaction. Every write made through them commits or rolls back as
// a unit.
type CheckoutRepositories interface {
	Orders() domainorder.Repository
	Stock() StockDecrementer
	CartLines() domaincart.LineRepository
}

// CheckoutScope executes a function inside one storage transaction.
// If fn returns an error the transaction rolls back and the error is
// returned unchanged.
type CheckoutScope interface {
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}
