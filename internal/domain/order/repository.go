package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
	List(ctx context.Context, filter shared.Filter) ([]*Order, int64, error)
}
