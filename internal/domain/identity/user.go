package identity

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Role determines which operations a user may perform
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

// IsValid reports whether the role is one of the defined values
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

const bcryptCost = 12

// User is the identity aggregate root. Role is fixed at registration.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         Role   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a hashed password
func NewUser(email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("email is invalid")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("password must be at least 8 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("name is required")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role must be one of CUSTOMER, VENDOR, ADMIN")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrCodeInternal, "failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		Name:              strings.TrimSpace(name),
		Role:              role,
	}
	user.AddDomainEvent(NewUserRegisteredEvent(user.ID, user.Email, user.Role))
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVendor reports whether the user holds the vendor role
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}

// IsCustomer reports whether the user holds the customer role
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
