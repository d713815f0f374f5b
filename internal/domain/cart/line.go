package cart

import (
	"github.com/google/uuid"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Line is one (customer, product) pairing with a quantity, held until
// checkout deletes it. Quantity is clamped to current stock on read.
type Line struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_customer_product;not null"`
	ProductID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_customer_product;not null"`
	Quantity   int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "cart_lines"
}

// NewLine creates a cart line
func NewLine(customerID, productID uuid.UUID, quantity int) (*Line, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product id is required")
	}
	if quantity < 1 {
		return nil, shared.NewValidationError("quantity must be at least 1")
	}

	return &Line{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity replaces the line quantity
func (l *Line) SetQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewValidationError("quantity must be at least 1")
	}
	l.Quantity = quantity
	return nil
}

// ClampToStock caps the quantity to the given stock level. Returns
// true when the quantity was reduced.
func (l *Line) ClampToStock(stock int) bool {
	if stock < 0 {
		stock = 0
	}
	if l.Quantity > stock {
		l.Quantity = stock
		return true
	}
	return false
}
