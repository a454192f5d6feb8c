package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetActiveByUser loads the user's active cart with items and products.
// Returns gorm.ErrRecordNotFound when the user has no active cart.
func (r *Repository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ? AND status = ?", userID, enums.CartStatusActive).
		First(&cart).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateActive returns the user's active cart, creating an empty one
// when none exists. The partial unique index keeps concurrent creates to a
// single winner; the loser re-reads.
func (r *Repository) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := r.GetActiveByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.Cart{UserID: userID, Status: enums.CartStatusActive}
	if createErr := r.db.WithContext(ctx).Create(&fresh).Error; createErr != nil {
		return r.GetActiveByUser(ctx, userID)
	}
	fresh.Items = []models.CartItem{}
	return &fresh, nil
}

// FindItemOwned loads a cart item only when it belongs to the user's active
// cart. Anything else reads as not found.
func (r *Repository) FindItemOwned(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ? AND carts.status = ?", itemID, userID, enums.CartStatusActive).
		First(&item).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddOrIncrementItem adds the product to the cart with quantity one, or bumps
// the quantity when a line for the product already exists.
func (r *Repository) AddOrIncrementItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).
			Error
		if findErr == nil {
			item.Quantity++
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity sets the quantity on a single cart item.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).
		Error
}

// RemoveItemOwned deletes a cart item only when it belongs to the user's
// active cart. Returns gorm.ErrRecordNotFound otherwise.
func (r *Repository) RemoveItemOwned(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := r.FindItemOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", item.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStoreAndComment persists the chosen pickup store and order comment on
// the cart. Checkout calls this before attempting fulfilment so the choice
// survives a failed attempt.
func (r *Repository) SetStoreAndComment(ctx context.Context, cartID uuid.UUID, storeID *uuid.UUID, comment string) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{"store_id": storeID, "comment": comment}).
		Error
}

// MarkConverted flips the cart out of the active state once its order is
// placed.
func (r *Repository) MarkConverted(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ? AND status = ?", cartID, enums.CartStatusActive).
		Update("status", enums.CartStatusConverted).
		Error
}
