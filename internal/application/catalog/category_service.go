package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
)

// CategoryService handles the admin-owned category lifecycle
type CategoryService struct {
	categories domaincatalog.CategoryRepository
	logger     *zap.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(categories domaincatalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
	}
}

// List returns all categories. Public.
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	categories, total, err := s.categories.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, toCategoryResponse(c))
	}
	return responses, total, nil
}

// Get returns a single category. Public.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

// Create adds a category. Admin only.
func (s *CategoryService) Create(ctx context.Context, principal appidentity.Principal, req CategoryRequest) (*CategoryResponse, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	exists, err := s.categories.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewAlreadyExistsError("category")
	}

	category, err := domaincatalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Update renames a category. Admin only.
func (s *CategoryService) Update(ctx context.Context, principal appidentity.Principal, id uuid.UUID, req CategoryRequest) (*CategoryResponse, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Admin only.
func (s *CategoryService) Delete(ctx context.Context, principal appidentity.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return shared.ErrForbidden
	}
	return s.categories.Delete(ctx, id)
}
