package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is emitted after a checkout commits. It carries the
// distinct vendors so the fan-out can address each vendor's channel.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	VendorIDs   []uuid.UUID
	ItemsCount  int
	TotalAmount decimal.Decimal
}

// NewOrderPlacedEvent creates an order placed event from the aggregate
func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		VendorIDs:       o.VendorIDs(),
		ItemsCount:      len(o.Items),
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is emitted when an order's status moves. It
// is addressed to the owning customer's channel.
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	NewStatus  Status
}

// NewOrderStatusChangedEvent creates an order status changed event
func NewOrderStatusChangedEvent(orderID, customerID uuid.UUID, status Status) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, orderID),
		OrderID:         orderID,
		CustomerID:      customerID,
		NewStatus:       status,
	}
}
