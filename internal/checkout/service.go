package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TxRunner runs a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CartWriter persists the store choice and comment on the cart. These writes
// happen outside the checkout transaction so a failed attempt keeps them.
type CartWriter interface {
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	SetStoreAndComment(ctx context.Context, cartID uuid.UUID, storeID *uuid.UUID, comment string) error
}

// StoreReader verifies the chosen pickup store exists.
type StoreReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	DB        TxRunner
	CartRepo  CartWriter
	StoreRepo StoreReader
	Now       func() time.Time
}

// Service turns an active cart into an order against one store's inventory.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (ResultDTO, error)
}

type service struct {
	db        TxRunner
	cartRepo  CartWriter
	storeRepo StoreReader
	now       func() time.Time
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.StoreRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store repo is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:        params.DB,
		cartRepo:  params.CartRepo,
		storeRepo: params.StoreRepo,
		now:       now,
	}, nil
}

// Execute places the order. The whole cart succeeds or nothing does: every
// line is checked against the store's stock and all shortfalls are reported
// together. The store choice and comment stay on the cart either way so the
// user can retry against another store without re-entering them.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (ResultDTO, error) {
	if userID == uuid.Nil {
		return ResultDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if input.StoreID == nil || *input.StoreID == uuid.Nil {
		return ResultDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "a pickup store is required")
	}
	storeID := *input.StoreID

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store not found")
		}
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	cart, err := s.cartRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "your cart is empty")
		}
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(cart.Items) == 0 {
		return ResultDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "your cart is empty")
	}

	// Committed before the fulfilment attempt: a shortfall abort must not
	// undo the user's store choice.
	if err := s.cartRepo.SetStoreAndComment(ctx, cart.ID, &storeID, input.Comment); err != nil {
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save store choice")
	}

	var result ResultDTO
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		fresh, err := loadActiveCartTx(tx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "your cart is empty")
			}
			return err
		}
		if len(fresh.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "your cart is empty")
		}

		productIDs := make([]uuid.UUID, 0, len(fresh.Items))
		for _, item := range fresh.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		stock, err := lockInventoryTx(tx, storeID, productIDs)
		if err != nil {
			return err
		}

		shortfalls := make([]ShortfallDTO, 0)
		for _, item := range fresh.Items {
			available := 0
			if row, ok := stock[item.ProductID]; ok {
				available = row.Quantity
			}
			if available < item.Quantity {
				name := ""
				if item.Product != nil {
					name = item.Product.Name
				}
				shortfalls = append(shortfalls, ShortfallDTO{
					ProductID:   item.ProductID,
					ProductName: name,
					Requested:   item.Quantity,
					Available:   available,
				})
			}
		}
		if len(shortfalls) > 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "the chosen store cannot fulfil your cart").
				WithDetails(map[string]any{"shortfalls": shortfalls})
		}

		orderedAt := s.now()
		order := models.Order{
			UserID:    userID,
			StoreID:   storeID,
			Status:    enums.OrderStatusProcessing,
			Comment:   input.Comment,
			OrderedAt: orderedAt,
		}
		total := decimal.Zero
		itemCount := 0
		for _, item := range fresh.Items {
			line := models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
			if item.Product != nil {
				line.ProductName = item.Product.Name
				line.UnitPrice = item.Product.Price
			}
			total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			itemCount += line.Quantity
			order.Items = append(order.Items, line)
		}
		if err := createOrderTx(tx, &order); err != nil {
			return err
		}
		for _, item := range fresh.Items {
			if err := decrementInventoryTx(tx, stock[item.ProductID].ID, item.Quantity); err != nil {
				return err
			}
		}
		if err := markConvertedTx(tx, fresh.ID); err != nil {
			return err
		}

		result = ResultDTO{
			OrderID:   order.ID,
			StoreID:   storeID,
			Status:    order.Status,
			ItemCount: itemCount,
			Total:     total,
			OrderedAt: orderedAt,
		}
		return nil
	})
	if txErr != nil {
		if typed := pkgerrors.As(txErr); typed != nil {
			return ResultDTO{}, typed
		}
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "place order")
	}
	return result, nil
}
