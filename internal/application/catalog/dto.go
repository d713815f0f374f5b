package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
)

// CategoryRequest is the admin input for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryResponse is the outward view of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductRequest is the vendor input for creating or updating a product
type ProductRequest struct {
	CategoryID  uuid.UUID       `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"image_url"`
}

// SetProductStatusRequest is an admin moderation decision
type SetProductStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED INACTIVE"`
}

// SearchRequest holds catalog search query parameters
type SearchRequest struct {
	Query      string `form:"q"`
	CategoryID string `form:"category_id"`
	MinPrice   string `form:"min_price"`
	MaxPrice   string `form:"max_price"`
	Status     string `form:"status"`
	Mine       bool   `form:"mine"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
}

// ProductResponse is the outward view of a product with its read-time
// review aggregate.
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	VendorID      uuid.UUID       `json:"vendor_id"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ImageURL      string          `json:"image_url"`
	Status        string          `json:"status"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int64           `json:"review_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReviewRequest is the customer input for reviewing a product
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse is the outward view of a review
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func toCategoryResponse(c *domaincatalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func toProductResponse(p *domaincatalog.Product, rating domaincatalog.RatingSummary) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		VendorID:      p.VendorID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		ImageURL:      p.ImageURL,
		Status:        string(p.Status),
		AverageRating: rating.AverageRating,
		ReviewCount:   rating.ReviewCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toReviewResponse(r *domaincatalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		CustomerID: r.CustomerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
