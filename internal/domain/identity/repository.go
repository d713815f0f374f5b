package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/freshmart/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
}
