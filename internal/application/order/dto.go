package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainorder "github.com/freshmart/backend/internal/domain/order"
)

// PlaceOrderRequest is the checkout input. The order contents come
// from the caller's current cart, not from the request body.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required,min=10"`
	ContactPhone    string `json:"contact_phone" binding:"required,min=7"`
	PaymentMethod   string `json:"payment_method"`
}

// SetStatusRequest transitions an order's status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// ItemResponse is one order line with its price snapshot
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	VendorID     uuid.UUID       `json:"vendor_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

// PaymentResponse is the settlement record attached to an order
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
}

// OrderResponse is the outward view of an order aggregate
type OrderResponse struct {
	ID              uuid.UUID        `json:"id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	ShippingAddress string           `json:"shipping_address"`
	ContactPhone    string           `json:"contact_phone"`
	Items           []ItemResponse   `json:"items"`
	Payment         *PaymentResponse `json:"payment,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func toOrderResponse(o *domainorder.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		ShippingAddress: o.ShippingAddress,
		ContactPhone:    o.ContactPhone,
		Items:           make([]ItemResponse, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			VendorID:     item.VendorID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
		})
	}
	if o.Payment != nil {
		resp.Payment = &PaymentResponse{
			ID:            o.Payment.ID,
			Amount:        o.Payment.Amount,
			Method:        o.Payment.Method,
			Status:        string(o.Payment.Status),
			TransactionID: o.Payment.TransactionID,
		}
	}
	return resp
}
