package identity

import (
	"time"

	"github.com/google/uuid"

	domainidentity "github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/vendor"
)

// RegisterRequest is the registration input. ShopName is required when
// registering as a vendor.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=CUSTOMER VENDOR"`
	ShopName    string `json:"shop_name"`
	Description string `json:"description"`
}

// LoginRequest is the login input
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the token refresh input
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse is the public view of a user account
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// VendorSummary is the vendor profile section of a profile response
type VendorSummary struct {
	ID       uuid.UUID `json:"id"`
	ShopName string    `json:"shop_name"`
	Status   string    `json:"status"`
}

// AuthResponse is returned from register and login
type AuthResponse struct {
	User         UserResponse   `json:"user"`
	Vendor       *VendorSummary `json:"vendor,omitempty"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
}

// ProfileResponse is the authenticated profile view, including the
// set of views the session may open.
type ProfileResponse struct {
	User           UserResponse   `json:"user"`
	Vendor         *VendorSummary `json:"vendor,omitempty"`
	PermittedViews []string       `json:"permitted_views"`
}

func toUserResponse(u *domainidentity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toVendorSummary(p *vendor.Profile) *VendorSummary {
	if p == nil {
		return nil
	}
	return &VendorSummary{
		ID:       p.ID,
		ShopName: p.ShopName,
		Status:   string(p.Status),
	}
}
