package cart

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
	domaincart "github.com/freshmart/backend/internal/domain/cart"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	domainidentity "github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/shared"
)

type mockLineRepository struct {
	mock.Mock
}

func (m *mockLineRepository) Save(ctx context.Context, line *domaincart.Line) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockLineRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domaincart.Line, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domaincart.Line), args.Error(1)
}

func (m *mockLineRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*domaincart.Line, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincart.Line), args.Error(1)
}

func (m *mockLineRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	return m.Called(ctx, customerID, productID).Error(0)
}

func (m *mockLineRepository) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	return m.Called(ctx, customerID).Error(0)
}

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

func approvedProduct(t *testing.T, price string, stock int) *domaincatalog.Product {
	t.Helper()
	p, _ := decimal.NewFromString(price)
	product, err := domaincatalog.NewProduct(uuid.New(), uuid.New(), "Organic Apples", "", p, stock, "")
	require.NoError(t, err)
	require.NoError(t, product.SetStatus(domaincatalog.StatusApproved))
	return product
}

func customerPrincipal() appidentity.Principal {
	return appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleCustomer}
}

func TestCartGet(t *testing.T) {
	t.Run("clamps quantity to current stock on read", func(t *testing.T) {
		principal := customerPrincipal()
		product := approvedProduct(t, "3.50", 2)

		line, err := domaincart.NewLine(principal.UserID, product.ID, 5)
		require.NoError(t, err)

		lines := new(mockLineRepository)
		products := new(mockProductRepository)
		lines.On("FindByCustomer", mock.Anything, principal.UserID).Return([]*domaincart.Line{line}, nil)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		svc := NewService(lines, products, zap.NewNop())
		resp, err := svc.Get(context.Background(), principal)
		require.NoError(t, err)

		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 2, resp.Lines[0].Quantity)
		assert.True(t, resp.Lines[0].Clamped)
		assert.Equal(t, "7.00", resp.Total.StringFixed(2))
	})

	t.Run("vanished product reads as empty line", func(t *testing.T) {
		principal := customerPrincipal()
		line, err := domaincart.NewLine(principal.UserID, uuid.New(), 2)
		require.NoError(t, err)

		lines := new(mockLineRepository)
		products := new(mockProductRepository)
		lines.On("FindByCustomer", mock.Anything, principal.UserID).Return([]*domaincart.Line{line}, nil)
		products.On("FindByID", mock.Anything, line.ProductID).Return(nil, shared.NewNotFoundError("product"))

		svc := NewService(lines, products, zap.NewNop())
		resp, err := svc.Get(context.Background(), principal)
		require.NoError(t, err)

		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 0, resp.Lines[0].Quantity)
		assert.True(t, resp.Lines[0].Clamped)
	})

	t.Run("vendor has no cart", func(t *testing.T) {
		svc := NewService(new(mockLineRepository), new(mockProductRepository), zap.NewNop())
		_, err := svc.Get(context.Background(), appidentity.Principal{UserID: uuid.New(), Role: domainidentity.RoleVendor})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestCartAdd(t *testing.T) {
	t.Run("merges with existing line", func(t *testing.T) {
		principal := customerPrincipal()
		product := approvedProduct(t, "3.50", 10)

		existing, err := domaincart.NewLine(principal.UserID, product.ID, 2)
		require.NoError(t, err)

		lines := new(mockLineRepository)
		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		lines.On("FindByCustomerAndProduct", mock.Anything, principal.UserID, product.ID).Return(existing, nil)
		lines.On("Save", mock.Anything, mock.MatchedBy(func(l *domaincart.Line) bool {
			return l.Quantity == 5
		})).Return(nil)
		lines.On("FindByCustomer", mock.Anything, principal.UserID).Return([]*domaincart.Line{existing}, nil)

		svc := NewService(lines, products, zap.NewNop())
		_, err = svc.Add(context.Background(), principal, AddLineRequest{ProductID: product.ID, Quantity: 3})
		require.NoError(t, err)
		lines.AssertExpectations(t)
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		principal := customerPrincipal()
		product := approvedProduct(t, "3.50", 2)

		lines := new(mockLineRepository)
		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		lines.On("FindByCustomerAndProduct", mock.Anything, principal.UserID, product.ID).Return(nil, shared.NewNotFoundError("cart line"))

		svc := NewService(lines, products, zap.NewNop())
		_, err := svc.Add(context.Background(), principal, AddLineRequest{ProductID: product.ID, Quantity: 3})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeInsufficientStock, domainErr.Code)
	})

	t.Run("pending product is not found", func(t *testing.T) {
		principal := customerPrincipal()
		product, err := domaincatalog.NewProduct(uuid.New(), uuid.New(), "Organic Apples", "", decimal.NewFromFloat(3.50), 10, "")
		require.NoError(t, err)

		products := new(mockProductRepository)
		products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		svc := NewService(new(mockLineRepository), products, zap.NewNop())
		_, err = svc.Add(context.Background(), principal, AddLineRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.ErrCodeNotFound, domainErr.Code)
	})
}

func TestCartRemove(t *testing.T) {
	principal := customerPrincipal()
	productID := uuid.New()

	lines := new(mockLineRepository)
	lines.On("Delete", mock.Anything, principal.UserID, productID).Return(nil)

	svc := NewService(lines, new(mockProductRepository), zap.NewNop())
	require.NoError(t, svc.Remove(context.Background(), principal, productID))
	lines.AssertExpectations(t)
}
