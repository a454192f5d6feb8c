package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddOrIncrement creates the entry with quantity 1 or bumps an existing one.
func (r *Repository) AddOrIncrement(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.WishlistItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.WishlistItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  1,
			}).Error
		case err != nil:
			return err
		default:
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity + 1")).Error
		}
	})
}

// RemoveOwned deletes the item only when it belongs to the user.
// Returns gorm.ErrRecordNotFound when no owned row matched.
func (r *Repository) RemoveOwned(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUser returns the user's saved items newest-first, products included.
// A non-positive limit returns everything.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.WishlistItem, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.WishlistItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
