package notification

import "github.com/google/uuid"

// Event names pushed over the real-time channel
const (
	EventOrderStatusUpdate    = "orderStatusUpdate"
	EventNewOrderNotification = "newOrderNotification"
	EventVendorStatusUpdate   = "vendorStatusUpdate"
)

// Notification is one message addressed to a user's channel
type Notification struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher delivers notifications to connected clients. Channels are
// keyed by user id: a customer's own id, or the vendor-owning user's
// id for vendor events. Delivery is best-effort; a user with no open
// connection simply misses the message.
type Publisher interface {
	PublishToUser(userID uuid.UUID, n Notification)
}

// OrderStatusPayload is the body of an orderStatusUpdate event
type OrderStatusPayload struct {
	OrderID   uuid.UUID `json:"order_id"`
	NewStatus string    `json:"new_status"`
	Message   string    `json:"message"`
}

// NewOrderPayload is the body of a newOrderNotification event
type NewOrderPayload struct {
	OrderID    uuid.UUID `json:"order_id"`
	Message    string    `json:"message"`
	ItemsCount int       `json:"items_count"`
}

// VendorStatusPayload is the body of a vendorStatusUpdate event
type VendorStatusPayload struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Status   string    `json:"status"`
	Message  string    `json:"message"`
}
