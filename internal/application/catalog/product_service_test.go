package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	domainidentity "github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
	domainvendor "github.com/freshmart/backend/internal/domain/vendor"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Save(ctx context.Context, product *domaincatalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincatalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincatalog.Product), args.Error(1)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepository) Search(ctx context.Context, params domaincatalog.ProductSearch) ([]domaincatalog.ProductListing, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domaincatalog.ProductListing), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) RatingFor(ctx context.Context, productID uuid.UUID) (domaincatalog.RatingSummary, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domaincatalog.RatingSummary), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Save(ctx context.Context, review *domaincatalog.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) ExistsByProductAndCustomer(ctx context.Context, productID, customerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domaincatalog.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domaincatalog.Review), args.Error(1)
}

type mockVendorRepository struct {
	mock.Mock
}

func (m *mockVendorRepository) Save(ctx context.Context, profile *domainvendor.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainvendor.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainvendor.Profile), args.Error(1)
}

func (m *mockVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domainvendor.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainvendor.Profile), args.Error(1)
}

func (m *mockVendorRepository) List(ctx context.Context, filter shared.Filter) ([]*domainvendor.Profile, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domainvendor.Profile), args.Get(1).(int64), args.Error(2)
}

func approvedProduct(t *testing.T, vendorID uuid.UUID) *domaincatalog.Product {
	t.Helper()
	product, err := domaincatalog.NewProduct(vendorID, uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 100, "")
	require.NoError(t, err)
	require.NoError(t, product.SetStatus(domaincatalog.StatusApproved))
	return product
}

func TestProductServiceSearch(t *testing.T) {
	t.Run("public search sees approved only", func(t *testing.T) {
		products := new(mockProductRepository)
		products.On("Search", mock.Anything, mock.MatchedBy(func(p domaincatalog.ProductSearch) bool {
			return len(p.Statuses) == 1 && p.Statuses[0] == domaincatalog.StatusApproved
		})).Return([]domaincatalog.ProductListing{}, int64(0), nil)

		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		_, _, err := svc.Search(context.Background(), nil, SearchRequest{Query: "apple"})
		require.NoError(t, err)
		products.AssertExpectations(t)
	})

	t.Run("vendor searching own listings sees all states", func(t *testing.T) {
		vendorID := uuid.New()
		products := new(mockProductRepository)
		products.On("Search", mock.Anything, mock.MatchedBy(func(p domaincatalog.ProductSearch) bool {
			return p.VendorID != nil && *p.VendorID == vendorID && p.Statuses == nil
		})).Return([]domaincatalog.ProductListing{}, int64(0), nil)

		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		principal := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor, VendorID: &vendorID}
		_, _, err := svc.Search(context.Background(), &principal, SearchRequest{Mine: true})
		require.NoError(t, err)
		products.AssertExpectations(t)
	})

	t.Run("rejects malformed price filter", func(t *testing.T) {
		svc := NewProductService(new(mockProductRepository), new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		_, _, err := svc.Search(context.Background(), nil, SearchRequest{MinPrice: "cheap"})
		assert.Error(t, err)
	})
}

func TestProductServiceGetByID(t *testing.T) {
	t.Run("pending product is not found for public caller", func(t *testing.T) {
		product, err := domaincatalog.NewProduct(uuid.New(), uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 100, "")
		require.NoError(t, err)

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		_, err = svc.GetByID(context.Background(), nil, product.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeNotFound, domainErr.Code)
	})

	t.Run("owner sees own pending product", func(t *testing.T) {
		vendorID := uuid.New()
		product, err := domaincatalog.NewProduct(vendorID, uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 100, "")
		require.NoError(t, err)

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		products.On("RatingFor", mock.Anything, product.ID).Return(domaincatalog.RatingSummary{}, nil)

		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		principal := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor, VendorID: &vendorID}
		resp, err := svc.GetByID(context.Background(), &principal, product.ID)
		require.NoError(t, err)
		assert.Equal(t, string(domaincatalog.StatusPending), resp.Status)
	})
}

func TestProductServiceCreate(t *testing.T) {
	req := ProductRequest{
		CategoryID: uuid.New(),
		Name:       "Organic Apples",
		Price:      decimal.NewFromFloat(3.50),
		Stock:      100,
	}

	t.Run("unapproved vendor cannot list", func(t *testing.T) {
		userID := uuid.New()
		profile, err := domainvendor.NewProfile(userID, "Green Grocer", "")
		require.NoError(t, err)

		vendors := new(mockVendorRepository)
		vendors.On("FindByUserID", mock.Anything, userID).Return(profile, nil)

		svc := NewProductService(new(mockProductRepository), new(mockReviewRepository), vendors, zap.NewNop())
		principal := appidentity.Principal{UserID: userID, Role: domainidentity.RoleVendor}
		_, err = svc.Create(context.Background(), principal, req)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeForbidden, domainErr.Code)
	})

	t.Run("approved vendor lists pending product", func(t *testing.T) {
		userID := uuid.New()
		profile, err := domainvendor.NewProfile(userID, "Green Grocer", "")
		require.NoError(t, err)
		require.NoError(t, profile.SetStatus(domainvendor.StatusApproved))

		vendors := new(mockVendorRepository)
		products := new(mockProductRepository)
		vendors.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
		products.On("Save", mock.Anything, mock.MatchedBy(func(p *domaincatalog.Product) bool {
			return p.Status == domaincatalog.StatusPending && p.VendorID == profile.ID
		})).Return(nil)

		svc := NewProductService(products, new(mockReviewRepository), vendors, zap.NewNop())
		principal := appidentity.Principal{UserID: userID, Role: domainidentity.RoleVendor}
		resp, err := svc.Create(context.Background(), principal, req)
		require.NoError(t, err)
		assert.Equal(t, string(domaincatalog.StatusPending), resp.Status)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("non-owner vendor is forbidden", func(t *testing.T) {
		product := approvedProduct(t, uuid.New())

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		otherVendor := uuid.New()
		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		principal := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor, VendorID: &otherVendor}
		_, err := svc.Update(context.Background(), principal, product.ID, ProductRequest{
			CategoryID: product.CategoryID,
			Name:       "New Name",
			Price:      decimal.NewFromFloat(4.00),
			Stock:      10,
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("owner edit resets moderation", func(t *testing.T) {
		vendorID := uuid.New()
		product := approvedProduct(t, vendorID)

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		products.On("Save", mock.Anything, product).Return(nil)
		products.On("RatingFor", mock.Anything, product.ID).Return(domaincatalog.RatingSummary{}, nil)

		svc := NewProductService(products, new(mockReviewRepository), new(mockVendorRepository), zap.NewNop())
		principal := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor, VendorID: &vendorID}
		resp, err := svc.Update(context.Background(), principal, product.ID, ProductRequest{
			CategoryID: product.CategoryID,
			Name:       "New Name",
			Price:      decimal.NewFromFloat(4.00),
			Stock:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, string(domaincatalog.StatusPending), resp.Status)
	})
}

func TestReviewServiceAdd(t *testing.T) {
	customer := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleCustomer}

	t.Run("second review conflicts", func(t *testing.T) {
		product := approvedProduct(t, uuid.New())

		products := new(mockProductRepository)
		reviews := new(mockReviewRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		reviews.On("ExistsByProductAndCustomer", mock.Anything, product.ID, customer.UserID).Return(true, nil)

		svc := NewReviewService(reviews, products, zap.NewNop())
		_, err := svc.Add(context.Background(), customer, product.ID, ReviewRequest{Rating: 5})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeAlreadyExists, domainErr.Code)
	})

	t.Run("pending product is not reviewable", func(t *testing.T) {
		product, err := domaincatalog.NewProduct(uuid.New(), uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 100, "")
		require.NoError(t, err)

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		svc := NewReviewService(new(mockReviewRepository), products, zap.NewNop())
		_, err = svc.Add(context.Background(), customer, product.ID, ReviewRequest{Rating: 5})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeNotFound, domainErr.Code)
	})

	t.Run("vendor cannot review", func(t *testing.T) {
		svc := NewReviewService(new(mockReviewRepository), new(mockProductRepository), zap.NewNop())
		vendorPrincipal := appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor}
		_, err := svc.Add(context.Background(), vendorPrincipal, uuid.New(), ReviewRequest{Rating: 5})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("first review is saved", func(t *testing.T) {
		product := approvedProduct(t, uuid.New())

		products := new(mockProductRepository)
		reviews := new(mockReviewRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		reviews.On("ExistsByProductAndCustomer", mock.Anything, product.ID, customer.UserID).Return(false, nil)
		reviews.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Review")).Return(nil)

		svc := NewReviewService(reviews, products, zap.NewNop())
		resp, err := svc.Add(context.Background(), customer, product.ID, ReviewRequest{Rating: 4, Comment: "fresh"})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Rating)
	})
}
