package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddLineRequest adds a product to the cart
type AddLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateLineRequest replaces a line's quantity
type UpdateLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// LineResponse is one cart line joined with live product data. The
// quantity is clamped to current stock at read time; Clamped reports
// whether that reduced the stored quantity.
type LineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Stock       int             `json:"stock"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Clamped     bool            `json:"clamped"`
}

// CartResponse is the customer's full cart
type CartResponse struct {
	Lines []LineResponse  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
