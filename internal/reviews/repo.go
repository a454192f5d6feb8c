package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the review row. The unique (user, product) index backs the
// one-review-per-product rule when two submissions race.
func (r *Repository) Create(ctx context.Context, review *models.ReviewLog) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ExistsForUser reports whether the user already reviewed the product.
func (r *Repository) ExistsForUser(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLog{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
