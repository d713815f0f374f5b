package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/freshmart/backend/internal/application/identity"
	domaincatalog "github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/shared"
)

// ReviewService handles customer reviews of products
type ReviewService struct {
	reviews  domaincatalog.ReviewRepository
	products domaincatalog.ProductRepository
	logger   *zap.Logger
}

// NewReviewService creates a review service
func NewReviewService(reviews domaincatalog.ReviewRepository, products domaincatalog.ProductRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		logger:   logger,
	}
}

// Add submits one review of an approved product. A customer may review
// each product at most once.
func (s *ReviewService) Add(ctx context.Context, principal appidentity.Principal, productID uuid.UUID, req ReviewRequest) (*ReviewResponse, error) {
	if !principal.IsCustomer() {
		return nil, shared.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() {
		return nil, shared.NewNotFoundError("product")
	}

	exists, err := s.reviews.ExistsByProductAndCustomer(ctx, productID, principal.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewAlreadyExistsError("review")
	}

	review, err := domaincatalog.NewReview(productID, principal.UserID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

// ListByProduct returns all reviews of an approved product
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsApproved() {
		return nil, shared.NewNotFoundError("product")
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		responses = append(responses, toReviewResponse(r))
	}
	return responses, nil
}
