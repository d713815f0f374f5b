package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart/backend/internal/domain/shared"
)

// ProductSearch holds the catalog search parameters. A nil Statuses
// slice means all moderation states; public reads pass APPROVED only.
type ProductSearch struct {
	Query      string
	CategoryID *uuid.UUID
	VendorID   *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Statuses   []Status
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
}

// RatingSummary is a read-time aggregate over a product's reviews
type RatingSummary struct {
	AverageRating float64
	ReviewCount   int64
}

// ProductListing pairs a product with its review aggregate
type ProductListing struct {
	Product Product
	Rating  RatingSummary
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter shared.Filter) ([]*Category, int64, error)
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params ProductSearch) ([]ProductListing, int64, error)
	RatingFor(ctx context.Context, productID uuid.UUID) (RatingSummary, error)
}

// ReviewRepository defines persistence operations for reviews
type ReviewRepository interface {
	Save(ctx context.Context, review *Review) error
	ExistsByProductAndCustomer(ctx context.Context, productID, customerID uuid.UUID) (bool, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*Review, error)
}
