package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domainorder "github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
)

// Service handles order reads and status transitions
type Service struct {
	orders   domainorder.Repository
	eventBus shared.EventBus
	logger   *zap.Logger
}

// NewService creates an order service
func NewService(orders domainorder.Repository, eventBus shared.EventBus, logger *zap.Logger) *Service {
	return &Service{
		orders:   orders,
		eventBus: eventBus,
		logger:   logger,
	}
}

// GetByID returns one order. Only the owning customer, a vendor with a
// product in the order, or an admin may read it.
func (s *Service) GetByID(ctx context.Context, principal appidentity.Principal, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canRead(principal, order) {
		return nil, shared.ErrForbidden
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// ListMine returns the calling customer's orders
func (s *Service) ListMine(ctx context.Context, principal appidentity.Principal, filter shared.Filter) ([]OrderResponse, int64, error) {
	if !principal.IsCustomer() {
		return nil, 0, shared.ErrForbidden
	}
	orders, total, err := s.orders.ListByCustomer(ctx, principal.UserID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// ListForVendor returns orders containing at least one of the calling
// vendor's products.
func (s *Service) ListForVendor(ctx context.Context, principal appidentity.Principal, filter shared.Filter) ([]OrderResponse, int64, error) {
	if !principal.IsVendor() || principal.VendorID == nil {
		return nil, 0, shared.ErrForbidden
	}
	orders, total, err := s.orders.ListByVendor(ctx, *principal.VendorID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// ListAll returns every order. Admin only.
func (s *Service) ListAll(ctx context.Context, principal appidentity.Principal, filter shared.Filter) ([]OrderResponse, int64, error) {
	if !principal.IsAdmin() {
		return nil, 0, shared.ErrForbidden
	}
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// SetStatus transitions an order's status. Admins may move any order;
// a vendor may only move orders containing their own products. On
// success the owning customer's channel is notified, best-effort.
func (s *Service) SetStatus(ctx context.Context, principal appidentity.Principal, id uuid.UUID, req SetStatusRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canModerate(principal, order) {
		return nil, shared.ErrForbidden
	}

	if err := order.SetStatus(domainorder.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if err := s.eventBus.Publish(ctx, order.DomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order status events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
	order.ClearDomainEvents()

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *Service) canRead(principal appidentity.Principal, order *domainorder.Order) bool {
	if principal.IsAdmin() {
		return true
	}
	if principal.IsCustomer() {
		return order.CustomerID == principal.UserID
	}
	return s.canModerate(principal, order)
}

func (s *Service) canModerate(principal appidentity.Principal, order *domainorder.Order) bool {
	if principal.IsAdmin() {
		return true
	}
	if principal.IsVendor() && principal.VendorID != nil {
		return order.ContainsVendor(*principal.VendorID)
	}
	return false
}

func toOrderResponses(orders []*domainorder.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, toOrderResponse(o))
	}
	return responses
}
