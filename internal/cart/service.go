package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// CartStore is the persistence surface the service needs.
type CartStore interface {
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetOrCreateActive(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindItemOwned(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error)
	AddOrIncrementItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	RemoveItemOwned(ctx context.Context, userID, itemID uuid.UUID) error
}

// ProductReader checks product existence before adding cart lines.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    CartStore
	ProductRepo ProductReader
}

// Service manages a user's active cart.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (CartDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) (CartDTO, error)
	UpdateQuantities(ctx context.Context, userID uuid.UUID, quantities map[string]string) (CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (CartDTO, error)
}

type service struct {
	cartRepo    CartStore
	productRepo ProductReader
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{cartRepo: params.CartRepo, productRepo: params.ProductRepo}, nil
}

// Get returns the user's active cart, creating an empty one on first view.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	cart, err := s.cartRepo.GetOrCreateActive(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return ToCartDTO(*cart), nil
}

// AddItem puts one unit of the product in the cart, or bumps the existing
// line by one.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if productID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cart, err := s.cartRepo.GetOrCreateActive(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if _, err := s.cartRepo.AddOrIncrementItem(ctx, cart.ID, productID); err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.refresh(ctx, userID)
}

// UpdateQuantities applies per-item quantity changes keyed by cart item id.
// Entries that fail to parse or do not belong to the user are skipped
// individually; valid updates are applied regardless. The returned error, if
// any, aggregates the skipped entries.
func (s *service) UpdateQuantities(ctx context.Context, userID uuid.UUID, quantities map[string]string) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var errs error
	skipped := make([]string, 0)
	for rawID, rawQty := range quantities {
		itemID, err := uuid.Parse(rawID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %q: invalid id", rawID))
			skipped = append(skipped, rawID)
			continue
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 1 {
			errs = multierr.Append(errs, fmt.Errorf("item %s: quantity %q must be a positive integer", rawID, rawQty))
			skipped = append(skipped, rawID)
			continue
		}
		item, err := s.cartRepo.FindItemOwned(ctx, userID, itemID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %s: not in your cart", rawID))
			skipped = append(skipped, rawID)
			continue
		}
		if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, qty); err != nil {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
		}
	}

	dto, err := s.refresh(ctx, userID)
	if err != nil {
		return CartDTO{}, err
	}
	if errs != nil {
		return dto, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "some cart items could not be updated").
			WithDetails(map[string]any{"skipped": skipped})
	}
	return dto, nil
}

// RemoveItem deletes a line from the user's cart. Items belonging to other
// users read as not found.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (CartDTO, error) {
	if userID == uuid.Nil {
		return CartDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.cartRepo.RemoveItemOwned(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
		}
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.refresh(ctx, userID)
}

func (s *service) refresh(ctx context.Context, userID uuid.UUID) (CartDTO, error) {
	cart, err := s.cartRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return CartDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return ToCartDTO(*cart), nil
}
