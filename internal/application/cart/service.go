package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincart "github.com/freshmart/backend/internal/domain/cart"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
)

// Service handles the customer's cart. Lines hold only product id and
// quantity; product details are joined live on read, and quantities
// are clamped to current stock at that point.
type Service struct {
	lines    domaincart.LineRepository
	products domaincatalog.ProductRepository
	logger   *zap.Logger
}

// NewService creates a cart service
func NewService(lines domaincart.LineRepository, products domaincatalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		lines:    lines,
		products: products,
		logger:   logger,
	}
}

// Get returns the caller's cart with read-time stock clamping. Lines
// whose product has disappeared or lost approval are shown with zero
// quantity rather than dropped silently.
func (s *Service) Get(ctx context.Context, principal appidentity.Principal) (*CartResponse, error) {
	if !principal.IsCustomer() {
		return nil, shared.ErrForbidden
	}

	lines, err := s.lines.FindByCustomer(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Lines: make([]LineResponse, 0, len(lines)),
		Total: decimal.Zero,
	}
	for _, line := range lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == shared.ErrCodeNotFound {
				resp.Lines = append(resp.Lines, LineResponse{
					ProductID: line.ProductID,
					Quantity:  0,
					Clamped:   true,
				})
				continue
			}
			return nil, err
		}

		available := product.Stock
		if !product.IsApproved() {
			available = 0
		}
		clamped := line.ClampToStock(available)

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		resp.Lines = append(resp.Lines, LineResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
			Stock:       product.Stock,
			LineTotal:   lineTotal,
			Clamped:     clamped,
		})
		resp.Total = resp.Total.Add(lineTotal)
	}
	return resp, nil
}

// Add puts a product in the cart, merging with an existing line for
// the same product.
func (s *Service) Add(ctx context.Context, principal appidentity.Principal, req AddLineRequest) (*CartResponse, error) {
	if !principal.IsCustomer() {
		return nil, shared.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() {
		return nil, shared.NewNotFoundError("product")
	}

	line, err := s.lines.FindByCustomerAndProduct(ctx, principal.UserID, req.ProductID)
	if err != nil {
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != shared.ErrCodeNotFound {
			return nil, err
		}
		line = nil
	}

	quantity := req.Quantity
	if line != nil {
		quantity += line.Quantity
	}
	if quantity > product.Stock {
		return nil, insufficientStock(product.Name, product.Stock)
	}

	if line == nil {
		line, err = domaincart.NewLine(principal.UserID, req.ProductID, quantity)
		if err != nil {
			return nil, err
		}
	} else if err := line.SetQuantity(quantity); err != nil {
		return nil, err
	}

	if err := s.lines.Save(ctx, line); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal)
}

// UpdateQuantity replaces the quantity of an existing line
func (s *Service) UpdateQuantity(ctx context.Context, principal appidentity.Principal, productID uuid.UUID, req UpdateLineRequest) (*CartResponse, error) {
	if !principal.IsCustomer() {
		return nil, shared.ErrForbidden
	}

	line, err := s.lines.FindByCustomerAndProduct(ctx, principal.UserID, productID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.Quantity > product.Stock {
		return nil, insufficientStock(product.Name, product.Stock)
	}

	if err := line.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.lines.Save(ctx, line); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal)
}

// Remove deletes one line from the cart
func (s *Service) Remove(ctx context.Context, principal appidentity.Principal, productID uuid.UUID) error {
	if !principal.IsCustomer() {
		return shared.ErrForbidden
	}
	return s.lines.Delete(ctx, principal.UserID, productID)
}

func insufficientStock(productName string, available int) *shared.DomainError {
	return shared.NewDomainError(shared.ErrCodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s: %d available", productName, available))
}
