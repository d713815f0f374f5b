package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Review is a customer rating of a product. At most one review may
// exist per (product, customer) pair, enforced by a unique index.
type Review struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_product_customer;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_reviews_product_customer;not null"`
	Rating     int       `gorm:"not null"`
	Comment    string
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a rating between 1 and 5
func NewReview(productID, customerID uuid.UUID, rating int, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product id is required")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id is required")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewValidationError("rating must be between 1 and 5")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		CustomerID:        customerID,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
	}, nil
}
