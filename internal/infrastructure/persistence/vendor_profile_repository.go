package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/freshmart/backend/internal/domain/vendor"
)

// GormVendorProfileRepository implements ProfileRepository using GORM
type GormVendorProfileRepository struct {
	db *gorm.DB
}

// NewGormVendorProfileRepository creates a new GormVendorProfileRepository
func NewGormVendorProfileRepository(db *gorm.DB) *GormVendorProfileRepository {
	return &GormVendorProfileRepository{db: db}
}

// Save creates or updates a vendor profile
func (r *GormVendorProfileRepository) Save(ctx context.Context, profile *vendor.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// FindByID finds a vendor profile by its ID
func (r *GormVendorProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*vendor.Profile, error) {
	var profile vendor.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserID finds the vendor profile owned by a user
func (r *GormVendorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*vendor.Profile, error) {
	var profile vendor.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// List finds vendor profiles matching the filter and returns the total count
func (r *GormVendorProfileRepository) List(ctx context.Context, filter shared.Filter) ([]*vendor.Profile, int64, error) {
	query := r.db.WithContext(ctx).Model(&vendor.Profile{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("shop_name LIKE ?", pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, VendorProfileSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var profiles []*vendor.Profile
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// Ensure GormVendorProfileRepository implements ProfileRepository
var _ vendor.ProfileRepository = (*GormVendorProfileRepository)(nil)
