package catalog

import (
	"strings"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Category groups products. Lifecycle is admin-owned.
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("category name is required")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update changes the category name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("category name is required")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.IncrementVersion()
	return nil
}
