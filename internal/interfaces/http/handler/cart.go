package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/freshmart/backend/internal/application/cart"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.POST("", h.AddItem)
		cart.PUT("/:productId", h.UpdateItem)
		cart.DELETE("/:productId", h.RemoveItem)
	}
}

// Get returns the caller's cart with per-line availability applied
func (h *CartHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a product to the cart, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req cartapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.Add(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem replaces the quantity on an existing cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req cartapp.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), principal, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem deletes a line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	productID, ok := h.parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), principal, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
