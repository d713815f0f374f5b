package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
	domainvendor "github.com/freshmart/backend/internal/domain/vendor"
)

// ProductService handles the vendor-owned product lifecycle, admin
// moderation and the public catalog search.
type ProductService struct {
	products domaincatalog.ProductRepository
	reviews  domaincatalog.ReviewRepository
	vendors  domainvendor.ProfileRepository
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(
	products domaincatalog.ProductRepository,
	reviews domaincatalog.ReviewRepository,
	vendors domainvendor.ProfileRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products: products,
		reviews:  reviews,
		vendors:  vendors,
		logger:   logger,
	}
}

// Search runs the paginated catalog query. Unauthenticated callers and
// customers only ever see APPROVED products; vendors querying their own
// listings and admins see every moderation state.
func (s *ProductService) Search(ctx context.Context, principal *appidentity.Principal, req SearchRequest) ([]ProductResponse, int64, error) {
	params := domaincatalog.ProductSearch{
		Query:    req.Query,
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	}

	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, 0, shared.NewValidationError("category_id is not a valid uuid")
		}
		params.CategoryID = &id
	}
	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return nil, 0, shared.NewValidationError("min_price is not a valid number")
		}
		params.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return nil, 0, shared.NewValidationError("max_price is not a valid number")
		}
		params.MaxPrice = &max
	}

	switch {
	case req.Mine && principal != nil && principal.IsVendor() && principal.VendorID != nil:
		params.VendorID = principal.VendorID
		if req.Status != "" {
			params.Statuses = []domaincatalog.Status{domaincatalog.Status(req.Status)}
		}
	case principal != nil && principal.IsAdmin():
		if req.Status != "" {
			params.Statuses = []domaincatalog.Status{domaincatalog.Status(req.Status)}
		}
	default:
		params.Statuses = []domaincatalog.Status{domaincatalog.StatusApproved}
	}

	listings, total, err := s.products.Search(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(listings))
	for _, l := range listings {
		responses = append(responses, toProductResponse(&l.Product, l.Rating))
	}
	return responses, total, nil
}

// GetByID returns one product. Non-approved products are reported as
// not found to callers without owner or admin access, so their
// existence is not leaked.
func (s *ProductService) GetByID(ctx context.Context, principal *appidentity.Principal, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canSee(principal, product) {
		return nil, shared.NewNotFoundError("product")
	}

	rating, err := s.products.RatingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, rating)
	return &resp, nil
}

// Create lists a new product for the calling vendor. Only approved
// vendors may list; the product starts in PENDING moderation.
func (s *ProductService) Create(ctx context.Context, principal appidentity.Principal, req ProductRequest) (*ProductResponse, error) {
	profile, err := s.requireApprovedVendor(ctx, principal)
	if err != nil {
		return nil, err
	}

	product, err := domaincatalog.NewProduct(profile.ID, req.CategoryID, req.Name, req.Description, req.Price, req.Stock, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product, domaincatalog.RatingSummary{})
	return &resp, nil
}

// Update applies a vendor edit to their own product, resetting its
// moderation status to PENDING.
func (s *ProductService) Update(ctx context.Context, principal appidentity.Principal, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.requireOwnedProduct(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.CategoryID, req.Name, req.Description, req.Price, req.Stock, req.ImageURL); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	rating, err := s.products.RatingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, rating)
	return &resp, nil
}

// Delete removes a product. Owning vendor or admin.
func (s *ProductService) Delete(ctx context.Context, principal appidentity.Principal, id uuid.UUID) error {
	if principal.IsAdmin() {
		return s.products.Delete(ctx, id)
	}
	if _, err := s.requireOwnedProduct(ctx, principal, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// SetStatus applies an admin moderation decision to a product
func (s *ProductService) SetStatus(ctx context.Context, principal appidentity.Principal, id uuid.UUID, req SetProductStatusRequest) (*ProductResponse, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetStatus(domaincatalog.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	rating, err := s.products.RatingFor(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, rating)
	return &resp, nil
}

func (s *ProductService) canSee(principal *appidentity.Principal, product *domaincatalog.Product) bool {
	if product.IsApproved() {
		return true
	}
	if principal == nil {
		return false
	}
	if principal.IsAdmin() {
		return true
	}
	return principal.VendorID != nil && product.IsOwnedBy(*principal.VendorID)
}

func (s *ProductService) requireApprovedVendor(ctx context.Context, principal appidentity.Principal) (*domainvendor.Profile, error) {
	if !principal.IsVendor() {
		return nil, shared.ErrForbidden
	}
	profile, err := s.vendors.FindByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if !profile.IsApproved() {
		return nil, shared.NewDomainError(shared.ErrCodeForbidden, "vendor is not approved")
	}
	return profile, nil
}

func (s *ProductService) requireOwnedProduct(ctx context.Context, principal appidentity.Principal, id uuid.UUID) (*domaincatalog.Product, error) {
	if !principal.IsVendor() || principal.VendorID == nil {
		return nil, shared.ErrForbidden
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsOwnedBy(*principal.VendorID) {
		return nil, shared.ErrForbidden
	}
	return product, nil
}
