package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainorder "github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/shared"
	domainvendor "github.com/freshmart/backend/internal/domain/vendor"
)

// OrderPlacedHandler pushes a newOrderNotification to every vendor
// represented in a freshly placed order. The vendor profile ids on the
// event are resolved to their owning users, since channels are keyed
// by user id.
type OrderPlacedHandler struct {
	publisher Publisher
	vendors   domainvendor.ProfileRepository
	logger    *zap.Logger
}

// NewOrderPlacedHandler creates an order placed handler
func NewOrderPlacedHandler(publisher Publisher, vendors domainvendor.ProfileRepository, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{
		publisher: publisher,
		vendors:   vendors,
		logger:    logger,
	}
}

// EventType returns the handled event type
func (h *OrderPlacedHandler) EventType() string {
	return domainorder.EventTypeOrderPlaced
}

// Handle fans the notification out, best-effort per vendor. A vendor
// that cannot be resolved is skipped and logged; it never fails the
// event.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(domainorder.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	for _, vendorID := range placed.VendorIDs {
		profile, err := h.vendors.FindByID(ctx, vendorID)
		if err != nil {
			h.logger.Warn("skipping vendor notification",
				zap.String("vendor_id", vendorID.String()),
				zap.String("order_id", placed.OrderID.String()),
				zap.Error(err))
			continue
		}
		h.publisher.PublishToUser(profile.UserID, Notification{
			Event: EventNewOrderNotification,
			Data: NewOrderPayload{
				OrderID:    placed.OrderID,
				Message:    "You have a new order",
				ItemsCount: placed.ItemsCount,
			},
		})
	}
	return nil
}

// OrderStatusChangedHandler pushes an orderStatusUpdate to the owning
// customer's channel and nobody else's.
type OrderStatusChangedHandler struct {
	publisher Publisher
	logger    *zap.Logger
}

// NewOrderStatusChangedHandler creates an order status changed handler
func NewOrderStatusChangedHandler(publisher Publisher, logger *zap.Logger) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// EventType returns the handled event type
func (h *OrderStatusChangedHandler) EventType() string {
	return domainorder.EventTypeOrderStatusChanged
}

// Handle pushes the status update to the owning customer
func (h *OrderStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(domainorder.OrderStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.publisher.PublishToUser(changed.CustomerID, Notification{
		Event: EventOrderStatusUpdate,
		Data: OrderStatusPayload{
			OrderID:   changed.OrderID,
			NewStatus: string(changed.NewStatus),
			Message:   fmt.Sprintf("Your order is now %s", changed.NewStatus),
		},
	})
	return nil
}

// VendorStatusChangedHandler tells a vendor about a moderation
// decision on their profile.
type VendorStatusChangedHandler struct {
	publisher Publisher
	logger    *zap.Logger
}

// NewVendorStatusChangedHandler creates a vendor status changed handler
func NewVendorStatusChangedHandler(publisher Publisher, logger *zap.Logger) *VendorStatusChangedHandler {
	return &VendorStatusChangedHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// EventType returns the handled event type
func (h *VendorStatusChangedHandler) EventType() string {
	return domainvendor.EventTypeVendorStatusChanged
}

// Handle pushes the moderation result to the vendor's owning user
func (h *VendorStatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(domainvendor.VendorStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	h.publisher.PublishToUser(changed.UserID, Notification{
		Event: EventVendorStatusUpdate,
		Data: VendorStatusPayload{
			VendorID: changed.ProfileID,
			Status:   string(changed.Status),
			Message:  fmt.Sprintf("Your vendor account is now %s", changed.Status),
		},
	})
	return nil
}
