package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincart "github.com/freshmart/backend/internal/domain/cart"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	domainorder "github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
)

// CheckoutService converts a customer's cart into a durable order.
// Order, items, stock decrements, cart clearing and the payment row
// commit in one transaction; the vendor notification fan-out runs
// after commit and never affects the order's fate.
type CheckoutService struct {
	carts    domaincart.LineRepository
	products domaincatalog.ProductRepository
	scope    CheckoutScope
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(
	carts domaincart.LineRepository,
	products domaincatalog.ProductRepository,
	scope CheckoutScope,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		products: products,
		scope:    scope,
		eventBus: eventBus,
		logger:   logger,
	}
}

// PlaceOrder runs the checkout. Validation happens in a fixed order
// and the first failure aborts with no side effects: caller role,
// address and phone, non-empty cart, then per-line availability and
// stock. The stock check here is advisory; the transactional
// conditional decrement is what actually guards against races.
func (s *CheckoutService) PlaceOrder(ctx context.Context, principal appidentity.Principal, req PlaceOrderRequest) (*OrderResponse, error) {
	if !principal.IsCustomer() {
		return nil, shared.ErrForbidden
	}
	if len(strings.TrimSpace(req.ShippingAddress)) < 10 {
		return nil, shared.NewValidationError("shipping_address is too short")
	}
	if len(strings.TrimSpace(req.ContactPhone)) < 7 {
		return nil, shared.NewValidationError("contact_phone is too short")
	}

	lines, err := s.carts.FindByCustomer(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeEmptyCart, "cart is empty")
	}

	drafts := make([]domainorder.Draft, 0, len(lines))
	for _, line := range lines {
		draft, err := s.draftFromLine(ctx, line)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	order, err := domainorder.NewOrder(principal.UserID, req.ShippingAddress, req.ContactPhone, req.PaymentMethod, drafts)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos CheckoutRepositories) error {
		if err := repos.Orders().Save(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := repos.Stock().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return repos.CartLines().DeleteByCustomer(ctx, principal.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.publishAfterCommit(ctx, order)

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *CheckoutService) draftFromLine(ctx context.Context, line *domaincart.Line) (domainorder.Draft, error) {
	product, err := s.products.FindByID(ctx, line.ProductID)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrCodeNotFound {
			return domainorder.Draft{}, shared.NewDomainError(shared.ErrCodeProductUnavailable,
				fmt.Sprintf("product %s is no longer available", line.ProductID))
		}
		return domainorder.Draft{}, err
	}
	if !product.IsApproved() {
		return domainorder.Draft{}, shared.NewDomainError(shared.ErrCodeProductUnavailable,
			fmt.Sprintf("product %s is no longer available", product.Name))
	}
	if line.Quantity > product.Stock {
		return domainorder.Draft{}, shared.NewDomainError(shared.ErrCodeInsufficientStock,
			fmt.Sprintf("insufficient stock for %s: %d available", product.Name, product.Stock))
	}

	return domainorder.Draft{
		ProductID:   product.ID,
		VendorID:    product.VendorID,
		ProductName: product.Name,
		Quantity:    line.Quantity,
		UnitPrice:   product.Price,
	}, nil
}

// publishAfterCommit fans the placed event out to the bus. Delivery is
// best-effort: failures are logged and never surfaced to the caller.
func (s *CheckoutService) publishAfterCommit(ctx context.Context, order *domainorder.Order) {
	if err := s.eventBus.Publish(ctx, order.DomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order placed events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
	order.ClearDomainEvents()
}
