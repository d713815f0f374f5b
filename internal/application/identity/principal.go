package identity

import (
	"github.com/google/uuid"

	domainidentity "github.com/freshmart/backend/internal/domain/identity"
)

// Principal is the authenticated caller, built from validated token
// claims on login and carried explicitly into every service call.
type Principal struct {
	UserID   uuid.UUID
	Email    string
	Role     domainidentity.Role
	VendorID *uuid.UUID
}

// IsAdmin reports whether the caller holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == domainidentity.RoleAdmin
}

// IsVendor reports whether the caller holds the vendor role
func (p Principal) IsVendor() bool {
	return p.Role == domainidentity.RoleVendor
}

// IsCustomer reports whether the caller holds the customer role
func (p Principal) IsCustomer() bool {
	return p.Role == domainidentity.RoleCustomer
}
