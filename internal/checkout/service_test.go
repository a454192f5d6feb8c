package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/internal/cart"
	"github.com/nutrimart/nutrimart-backend/internal/stores"
	"github.com/nutrimart/nutrimart-backend/pkg/db"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	pkgerrors "github.com/nutrimart/nutrimart-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db      *gorm.DB
	svc     Service
	cartSvc cart.Service
}

func setupCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.StoreInventory{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	cartRepo := cart.NewRepository(conn)
	cartSvc, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productFinder{conn: conn},
	})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		DB:        db.NewWithConn(conn),
		CartRepo:  cartRepo,
		StoreRepo: stores.NewRepository(conn),
		Now:       func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	return &checkoutFixture{db: conn, svc: svc, cartSvc: cartSvc}
}

type productFinder struct {
	conn *gorm.DB
}

func (f productFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := f.conn.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (f *checkoutFixture) seedStore(t *testing.T) models.Store {
	t.Helper()
	store := models.Store{Name: "Downtown", Address: "1 Main St"}
	require.NoError(t, f.db.Create(&store).Error)
	return store
}

func (f *checkoutFixture) seedProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, f.db.Create(&product).Error)
	return product
}

func (f *checkoutFixture) stock(t *testing.T, storeID, productID uuid.UUID, qty int) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.StoreInventory{
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  qty,
	}).Error)
}

func (f *checkoutFixture) fillCart(t *testing.T, userID uuid.UUID, productID uuid.UUID, qty int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < qty; i++ {
		_, err := f.cartSvc.AddItem(ctx, userID, productID)
		require.NoError(t, err)
	}
}

func TestExecutePlacesOrderAndDecrementsStock(t *testing.T) {
	f := setupCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	store := f.seedStore(t)
	whey := f.seedProduct(t, "Whey", "10.00")
	bcaa := f.seedProduct(t, "BCAA", "5.50")
	f.stock(t, store.ID, whey.ID, 5)
	f.stock(t, store.ID, bcaa.ID, 1)
	f.fillCart(t, userID, whey.ID, 2)
	f.fillCart(t, userID, bcaa.ID, 1)

	result, err := f.svc.Execute(ctx, userID, CheckoutInput{StoreID: &store.ID, Comment: "call on arrival"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, result.Status)
	assert.Equal(t, 3, result.ItemCount)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("25.50")), "total %s", result.Total)

	var order models.Order
	require.NoError(t, f.db.Preload("Items").First(&order, "id = ?", result.OrderID).Error)
	assert.Equal(t, "call on arrival", order.Comment)
	require.Len(t, order.Items, 2)

	var inv models.StoreInventory
	require.NoError(t, f.db.First(&inv, "store_id = ? AND product_id = ?", store.ID, whey.ID).Error)
	assert.Equal(t, 3, inv.Quantity)
	require.NoError(t, f.db.First(&inv, "store_id = ? AND product_id = ?", store.ID, bcaa.ID).Error)
	assert.Equal(t, 0, inv.Quantity)

	var converted models.Cart
	require.NoError(t, f.db.First(&converted, "user_id = ?", userID).Error)
	assert.Equal(t, enums.CartStatusConverted, converted.Status)
}

func TestExecuteReportsAllShortfallsAndKeepsCart(t *testing.T) {
	f := setupCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	store := f.seedStore(t)
	whey := f.seedProduct(t, "Whey", "10.00")
	bcaa := f.seedProduct(t, "BCAA", "5.50")
	f.stock(t, store.ID, whey.ID, 1) // not enough for two
	// no inventory row at all for bcaa
	f.fillCart(t, userID, whey.ID, 2)
	f.fillCart(t, userID, bcaa.ID, 1)

	_, err := f.svc.Execute(ctx, userID, CheckoutInput{StoreID: &store.ID, Comment: "try here"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	shortfalls, ok := details["shortfalls"].([]ShortfallDTO)
	require.True(t, ok)
	require.Len(t, shortfalls, 2)
	byProduct := map[uuid.UUID]ShortfallDTO{}
	for _, s := range shortfalls {
		byProduct[s.ProductID] = s
	}
	assert.Equal(t, 1, byProduct[whey.ID].Available)
	assert.Equal(t, 2, byProduct[whey.ID].Requested)
	assert.Equal(t, 0, byProduct[bcaa.ID].Available)

	// The cart survives with the store choice and comment saved, and stock
	// is untouched.
	var kept models.Cart
	require.NoError(t, f.db.First(&kept, "user_id = ?", userID).Error)
	assert.Equal(t, enums.CartStatusActive, kept.Status)
	require.NotNil(t, kept.StoreID)
	assert.Equal(t, store.ID, *kept.StoreID)
	assert.Equal(t, "try here", kept.Comment)

	var inv models.StoreInventory
	require.NoError(t, f.db.First(&inv, "store_id = ? AND product_id = ?", store.ID, whey.ID).Error)
	assert.Equal(t, 1, inv.Quantity)

	var orderCount int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 0, orderCount)
}

func TestExecuteRequiresStore(t *testing.T) {
	f := setupCheckoutFixture(t)

	_, err := f.svc.Execute(context.Background(), uuid.New(), CheckoutInput{})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestExecuteUnknownStore(t *testing.T) {
	f := setupCheckoutFixture(t)
	missing := uuid.New()

	_, err := f.svc.Execute(context.Background(), uuid.New(), CheckoutInput{StoreID: &missing})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestExecuteEmptyCart(t *testing.T) {
	f := setupCheckoutFixture(t)
	store := f.seedStore(t)

	_, err := f.svc.Execute(context.Background(), uuid.New(), CheckoutInput{StoreID: &store.ID})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}
