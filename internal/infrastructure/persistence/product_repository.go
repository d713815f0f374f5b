package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Search finds products matching the search parameters, each paired with
// its review aggregate, and returns the total count of matching products.
func (r *GormProductRepository) Search(ctx context.Context, params catalog.ProductSearch) ([]catalog.ProductListing, int64, error) {
	query := r.applySearch(r.db.WithContext(ctx).Model(&catalog.Product{}), params)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(params.OrderBy, ProductSortFields, "created_at")
	orderDir := ValidateSortOrder(params.OrderDir)

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var products []catalog.Product
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	ratings, err := r.ratingsFor(ctx, productIDs(products))
	if err != nil {
		return nil, 0, err
	}

	listings := make([]catalog.ProductListing, len(products))
	for i, product := range products {
		listings[i] = catalog.ProductListing{
			Product: product,
			Rating:  ratings[product.ID],
		}
	}
	return listings, total, nil
}

// RatingFor returns the review aggregate for a single product.
// Products without reviews report a zero average and count.
func (r *GormProductRepository) RatingFor(ctx context.Context, productID uuid.UUID) (catalog.RatingSummary, error) {
	var summary catalog.RatingSummary
	if err := r.db.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(id) AS review_count").
		Where("product_id = ?", productID).
		Scan(&summary).Error; err != nil {
		return catalog.RatingSummary{}, err
	}
	return summary, nil
}

func (r *GormProductRepository) applySearch(query *gorm.DB, params catalog.ProductSearch) *gorm.DB {
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if len(params.Statuses) > 0 {
		query = query.Where("status IN ?", params.Statuses)
	}
	return query
}

type ratingRow struct {
	ProductID     uuid.UUID
	AverageRating float64
	ReviewCount   int64
}

// ratingsFor loads review aggregates for a set of products in one grouped query
func (r *GormProductRepository) ratingsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.RatingSummary, error) {
	ratings := make(map[uuid.UUID]catalog.RatingSummary, len(ids))
	if len(ids) == 0 {
		return ratings, nil
	}

	var rows []ratingRow
	if err := r.db.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(id) AS review_count").
		Where("product_id IN ?", ids).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		ratings[row.ProductID] = catalog.RatingSummary{
			AverageRating: row.AverageRating,
			ReviewCount:   row.ReviewCount,
		}
	}
	return ratings, nil
}

func productIDs(products []catalog.Product) []uuid.UUID {
	ids := make([]uuid.UUID, len(products))
	for i, product := range products {
		ids[i] = product.ID
	}
	return ids
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
