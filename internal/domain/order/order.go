package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Status is the fulfilment state of an order. Any status may move to
// any other; no forward-only ordering is enforced.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid reports whether the status is one of the defined values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
)

const (
	minAddressLength = 10
	minPhoneLength   = 7
)

// Item is one order line carrying a price snapshot taken at order
// time, immune to later product price changes.
type Item struct {
	shared.BaseEntity
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	VendorID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName  string          `gorm:"not null"`
	Quantity     int             `gorm:"not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// Extension returns quantity times the snapshotted price
func (i Item) Extension() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment records the synchronous mock settlement made at order time
type Payment struct {
	shared.BaseEntity
	OrderID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method        string          `gorm:"not null"`
	Status        PaymentStatus   `gorm:"not null"`
	TransactionID string          `gorm:"uniqueIndex"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// Order is the aggregate root created atomically with its items and
// payment at checkout.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          Status          `gorm:"index;not null"`
	PaymentStatus   PaymentStatus   `gorm:"not null"`
	ShippingAddress string          `gorm:"not null"`
	ContactPhone    string          `gorm:"not null"`
	Items           []Item          `gorm:"foreignKey:OrderID"`
	Payment         *Payment        `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Draft is the input for one order line, price already snapshotted
type Draft struct {
	ProductID   uuid.UUID
	VendorID    uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewOrder creates the order aggregate from drafted lines. The total
// is the sum of line extensions; a payment row is attached recording a
// synchronous mock-success settlement.
func NewOrder(customerID uuid.UUID, shippingAddress, contactPhone, paymentMethod string, drafts []Draft) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id is required")
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	if len(shippingAddress) < minAddressLength {
		return nil, shared.NewValidationError("shipping address is too short")
	}
	contactPhone = strings.TrimSpace(contactPhone)
	if len(contactPhone) < minPhoneLength {
		return nil, shared.NewValidationError("contact phone is too short")
	}
	if len(drafts) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeEmptyCart, "cart is empty")
	}
	if paymentMethod == "" {
		paymentMethod = "mock"
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            StatusPending,
		PaymentStatus:     PaymentStatusPending,
		ShippingAddress:   shippingAddress,
		ContactPhone:      contactPhone,
	}

	total := decimal.Zero
	for _, d := range drafts {
		if d.Quantity < 1 {
			return nil, shared.NewValidationError("quantity must be at least 1")
		}
		item := Item{
			BaseEntity:   shared.NewBaseEntity(),
			OrderID:      o.ID,
			ProductID:    d.ProductID,
			VendorID:     d.VendorID,
			ProductName:  d.ProductName,
			Quantity:     d.Quantity,
			PriceAtOrder: d.UnitPrice,
		}
		total = total.Add(item.Extension())
		o.Items = append(o.Items, item)
	}
	o.TotalAmount = total

	o.Payment = &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       o.ID,
		Amount:        total,
		Method:        paymentMethod,
		Status:        PaymentStatusCompleted,
		TransactionID: "txn_" + uuid.NewString(),
	}
	o.PaymentStatus = PaymentStatusCompleted

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// VendorIDs returns the distinct vendors represented in the order
func (o *Order) VendorIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	var ids []uuid.UUID
	for _, item := range o.Items {
		if _, ok := seen[item.VendorID]; ok {
			continue
		}
		seen[item.VendorID] = struct{}{}
		ids = append(ids, item.VendorID)
	}
	return ids
}

// ContainsVendor reports whether any item belongs to the given vendor
func (o *Order) ContainsVendor(vendorID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

// SetStatus transitions the order to the given status and records a
// status changed event addressed to the owning customer.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewValidationError("status must be one of PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED")
	}
	if o.Status == status {
		return nil
	}
	o.Status = status
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o.ID, o.CustomerID, status))
	return nil
}
