package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Status is the admin-controlled moderation state of a product
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusInactive Status = "INACTIVE"
)

// IsValid reports whether the status is one of the defined values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusInactive:
		return true
	}
	return false
}

// Product is a vendor-owned catalog entry. Any vendor edit resets the
// moderation status to PENDING so the listing is re-reviewed.
type Product struct {
	shared.BaseAggregateRoot
	VendorID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name        string          `gorm:"not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    string
	Status      Status `gorm:"index;not null;default:PENDING"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("product name is required")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("price must be positive")
	}
	if stock < 0 {
		return shared.NewValidationError("stock cannot be negative")
	}
	return nil
}

// NewProduct creates a product in PENDING status
func NewProduct(vendorID, categoryID uuid.UUID, name, description string, price decimal.Decimal, stock int, imageURL string) (*Product, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("vendor id is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewValidationError("category id is required")
	}
	if err := validateProductFields(name, price, stock); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VendorID:          vendorID,
		CategoryID:        categoryID,
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		Price:             price,
		Stock:             stock,
		ImageURL:          strings.TrimSpace(imageURL),
		Status:            StatusPending,
	}, nil
}

// IsApproved reports whether the product is visible to customers
func (p *Product) IsApproved() bool {
	return p.Status == StatusApproved
}

// Update applies a vendor edit and resets moderation status to PENDING
func (p *Product) Update(categoryID uuid.UUID, name, description string, price decimal.Decimal, stock int, imageURL string) error {
	if categoryID == uuid.Nil {
		return shared.NewValidationError("category id is required")
	}
	if err := validateProductFields(name, price, stock); err != nil {
		return err
	}

	p.CategoryID = categoryID
	p.Name = strings.TrimSpace(name)
	p.Description = strings.TrimSpace(description)
	p.Price = price
	p.Stock = stock
	p.ImageURL = strings.TrimSpace(imageURL)
	p.Status = StatusPending
	p.IncrementVersion()
	return nil
}

// SetStatus applies an admin moderation decision
func (p *Product) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be one of PENDING, APPROVED, REJECTED, INACTIVE")
	}
	p.Status = status
	p.IncrementVersion()
	return nil
}

// IsOwnedBy reports whether the product belongs to the given vendor
func (p *Product) IsOwnedBy(vendorID uuid.UUID) bool {
	return p.VendorID == vendorID
}
