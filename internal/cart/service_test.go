package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubCartStore struct {
	cart  *models.Cart
	items map[uuid.UUID]*models.CartItem
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{items: map[uuid.UUID]*models.CartItem{}}
}

func (s *stubCartStore) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	snapshot := *s.cart
	snapshot.Items = nil
	for _, item := range s.items {
		snapshot.Items = append(snapshot.Items, *item)
	}
	return &snapshot, nil
}

func (s *stubCartStore) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil {
		s.cart = &models.Cart{ID: uuid.New(), UserID: userID}
	}
	return s.GetActiveByUser(ctx, userID)
}

func (s *stubCartStore) FindItemOwned(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := s.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubCartStore) AddOrIncrementItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	for _, item := range s.items {
		if item.ProductID == productID {
			item.Quantity++
			return item, nil
		}
	}
	item := &models.CartItem{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Product:   &models.Product{ID: productID, Name: "Whey", Price: decimal.RequireFromString("10.00")},
		Quantity:  1,
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubCartStore) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	item, ok := s.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	return nil
}

func (s *stubCartStore) RemoveItemOwned(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.FindItemOwned(ctx, userID, itemID); err != nil {
		return err
	}
	delete(s.items, itemID)
	return nil
}

type stubProductReader struct {
	missing bool
}

func (s *stubProductReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.missing {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Product{ID: id, Name: "Whey", Price: decimal.RequireFromString("10.00")}, nil
}

func newTestService(t *testing.T, store CartStore, products ProductReader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{CartRepo: store, ProductRepo: products})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestGetCreatesEmptyCart(t *testing.T) {
	svc := newTestService(t, newStubCartStore(), &stubProductReader{})

	dto, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(dto.Items) != 0 || !dto.Total.IsZero() {
		t.Fatalf("expected empty cart, got %+v", dto)
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	store := newStubCartStore()
	svc := newTestService(t, store, &stubProductReader{})
	userID := uuid.New()
	productID := uuid.New()

	if _, err := svc.AddItem(context.Background(), userID, productID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	dto, err := svc.AddItem(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(dto.Items) != 1 || dto.Items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", dto.Items)
	}
	if !dto.Total.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("unexpected total %s", dto.Total)
	}
}

func TestAddItemMissingProduct(t *testing.T) {
	svc := newTestService(t, newStubCartStore(), &stubProductReader{missing: true})

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateQuantitiesSkipsInvalidEntries(t *testing.T) {
	store := newStubCartStore()
	svc := newTestService(t, store, &stubProductReader{})
	userID := uuid.New()

	first, err := svc.AddItem(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := first.Items[0].ID

	dto, err := svc.UpdateQuantities(context.Background(), userID, map[string]string{
		itemID.String():        "3",
		"not-a-uuid":           "2",
		uuid.New().String():    "2",  // not in this cart
		uuid.NewString() + "x": "-1", // bad id and bad quantity
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected aggregated validation error, got %v", err)
	}
	if len(dto.Items) != 1 || dto.Items[0].Quantity != 3 {
		t.Fatalf("valid update must still apply, got %+v", dto.Items)
	}
}

func TestUpdateQuantitiesRejectsNonPositive(t *testing.T) {
	store := newStubCartStore()
	svc := newTestService(t, store, &stubProductReader{})
	userID := uuid.New()

	first, err := svc.AddItem(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := first.Items[0].ID

	dto, err := svc.UpdateQuantities(context.Background(), userID, map[string]string{
		itemID.String(): "0",
	})
	if pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error, got %v", err)
	}
	if dto.Items[0].Quantity != 1 {
		t.Fatalf("quantity must be untouched, got %d", dto.Items[0].Quantity)
	}
}

func TestRemoveItemScopedToOwner(t *testing.T) {
	store := newStubCartStore()
	svc := newTestService(t, store, &stubProductReader{})
	userID := uuid.New()

	first, err := svc.AddItem(context.Background(), userID, uuid.New())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	itemID := first.Items[0].ID

	_, err = svc.RemoveItem(context.Background(), uuid.New(), itemID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}

	dto, err := svc.RemoveItem(context.Background(), userID, itemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(dto.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", dto.Items)
	}
}
