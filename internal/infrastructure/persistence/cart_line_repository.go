package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/cart"
	"github.com/freshmart/backend/internal/domain/shared"
)

// GormCartLineRepository implements LineRepository using GORM
type GormCartLineRepository struct {
	db *gorm.DB
}

// NewGormCartLineRepository creates a new GormCartLineRepository
func NewGormCartLineRepository(db *gorm.DB) *GormCartLineRepository {
	return &GormCartLineRepository{db: db}
}

// Save creates or updates a cart line
func (r *GormCartLineRepository) Save(ctx context.Context, line *cart.Line) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// FindByCustomer returns all cart lines for a customer, oldest first
func (r *GormCartLineRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.Line, error) {
	var lines []*cart.Line
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByCustomerAndProduct finds the cart line for a specific product
func (r *GormCartLineRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*cart.Line, error) {
	var line cart.Line
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// Delete removes a single cart line
func (r *GormCartLineRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&cart.Line{}, "customer_id = ? AND product_id = ?", customerID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCustomer removes all cart lines for a customer
func (r *GormCartLineRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&cart.Line{}, "customer_id = ?", customerID).Error
}

// Ensure GormCartLineRepository implements LineRepository
var _ cart.LineRepository = (*GormCartLineRepository)(nil)
