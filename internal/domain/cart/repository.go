package cart

import (
	"context"

	"github.com/google/uuid"
)

// LineRepository defines persistence operations for cart lines
type LineRepository interface {
	Save(ctx context.Context, line *Line) error
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Line, error)
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*Line, error)
	Delete(ctx context.Context, customerID, productID uuid.UUID) error
	DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error
}
