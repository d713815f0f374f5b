package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
)

// GormOrderRepository implements Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order together with its items and payment
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(o).Error
}

// FindByID finds an order by its ID with items and payment loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payment").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListByCustomer returns the orders placed by a customer
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*order.Order, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("customer_id = ?", customerID)
	return r.list(query, filter)
}

// ListByVendor returns the orders containing at least one item sold by the vendor
func (r *GormOrderRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]*order.Order, int64, error) {
	itemOrders := r.db.Model(&order.Item{}).
		Select("order_id").
		Where("vendor_id = ?", vendorID)
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id IN (?)", itemOrders)
	return r.list(query, filter)
}

// List returns all orders matching the filter
func (r *GormOrderRepository) List(ctx context.Context, filter shared.Filter) ([]*order.Order, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&order.Order{}), filter)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter shared.Filter) ([]*order.Order, int64, error) {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var orders []*order.Order
	if err := query.
		Preload("Items").
		Preload("Payment").
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
