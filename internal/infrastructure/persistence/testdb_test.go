package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshmart/backend/internal/domain/cart"
	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/identity"
	"github.com/freshmart/backend/internal/domain/order"
	"github.com/freshmart/backend/internal/domain/vendor"
)

// newTestDB opens an in-memory sqlite database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&vendor.Profile{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Review{},
		&cart.Line{},
		&order.Order{},
		&order.Item{},
		&order.Payment{},
	)
	require.NoError(t, err)

	return db
}
