package handler

import (
	"github.com/gin-gonic/gin"

	vendorapp "github.com/freshmart/backend/internal/application/vendor"
)

// VendorHandler handles vendor profile endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *vendorapp.Service
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *vendorapp.Service) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes registers vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.GET("", h.List)
		vendors.GET("/me", h.MyProfile)
		vendors.PUT("/me", h.UpdateMyProfile)
		vendors.PUT("/:id/status", h.SetStatus)
	}
}

// List lists vendor profiles. Admin only.
func (h *VendorHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	profiles, total, err := h.vendorService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, profiles, total, filter.Page, filter.PageSize)
}

// MyProfile returns the caller's own vendor profile
func (h *VendorHandler) MyProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	profile, err := h.vendorService.MyProfile(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateMyProfile edits the caller's shop name and description
func (h *VendorHandler) UpdateMyProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req vendorapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.vendorService.UpdateMyProfile(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// SetStatus approves or suspends a vendor. Admin only.
func (h *VendorHandler) SetStatus(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req vendorapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.vendorService.SetStatus(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}
