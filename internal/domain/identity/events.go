package identity

import (
	"github.com/google/uuid"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeUserRegistered = "identity.user_registered"
)

// UserRegisteredEvent is emitted when a new user account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID
	Email  string
	Role   Role
}

// NewUserRegisteredEvent creates a user registered event
func NewUserRegisteredEvent(userID uuid.UUID, email string, role Role) UserRegisteredEvent {
	return UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, userID),
		UserID:          userID,
		Email:           email,
		Role:            role,
	}
}
