package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"gorm.io/gorm"
)

// ReviewStore is the persistence surface the service needs.
type ReviewStore interface {
	Create(ctx context.Context, review *models.ReviewLog) error
	ExistsForUser(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ProductReader checks product existence before accepting reviews.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	ReviewRepo  ReviewStore
	ProductRepo ProductReader
	Now         func() time.Time
}

// Service accepts customer reviews for moderation.
type Service interface {
	Create(ctx context.Context, userID, productID uuid.UUID, input CreateReviewInput) (ReviewCreatedDTO, error)
}

type service struct {
	reviewRepo  ReviewStore
	productRepo ProductReader
	now         func() time.Time
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		reviewRepo:  params.ReviewRepo,
		productRepo: params.ProductRepo,
		now:         now,
	}, nil
}

// Create stores a review pending moderation. A second review for the same
// product is a conflict and the first one stays untouched.
func (s *service) Create(ctx context.Context, userID, productID uuid.UUID, input CreateReviewInput) (ReviewCreatedDTO, error) {
	if userID == uuid.Nil {
		return ReviewCreatedDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return ReviewCreatedDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Grade < 1 || input.Grade > 5 {
		return ReviewCreatedDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "grade must be between 1 and 5")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewCreatedDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ReviewCreatedDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	exists, err := s.reviewRepo.ExistsForUser(ctx, userID, productID)
	if err != nil {
		return ReviewCreatedDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if exists {
		return ReviewCreatedDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this product").
			WithDetails(map[string]any{"product_id": productID})
	}

	review := models.ReviewLog{
		UserID:     userID,
		ProductID:  productID,
		Grade:      input.Grade,
		Comment:    input.Comment,
		Viewable:   false,
		ReviewedAt: s.now(),
	}
	if err := s.reviewRepo.Create(ctx, &review); err != nil {
		if db.IsUniqueViolation(err, "") {
			return ReviewCreatedDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "you have already reviewed this product").
				WithDetails(map[string]any{"product_id": productID})
		}
		return ReviewCreatedDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save review")
	}

	return ReviewCreatedDTO{
		ID:         review.ID,
		ProductID:  review.ProductID,
		Grade:      review.Grade,
		Comment:    review.Comment,
		Viewable:   review.Viewable,
		ReviewedAt: review.ReviewedAt,
	}, nil
}
