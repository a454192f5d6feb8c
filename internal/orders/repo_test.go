package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Store{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, orderedAt time.Time, lines ...models.OrderItem) models.Order {
	t.Helper()

	store := models.Store{Name: "Center", Address: "1 Main St"}
	require.NoError(t, db.Create(&store).Error)

	order := models.Order{
		UserID:    userID,
		StoreID:   store.ID,
		Status:    enums.OrderStatusProcessing,
		OrderedAt: orderedAt,
		Items:     lines,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestListByUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	older := seedOrder(t, db, userID, time.Now().Add(-48*time.Hour))
	newer := seedOrder(t, db, userID, time.Now())
	seedOrder(t, db, uuid.New(), time.Now()) // someone else's order

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	assert.Equal(t, "Center", orders[0].Store.Name)
}

func TestFindOwnedScopesToUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	order := seedOrder(t, db, userID, time.Now(), models.OrderItem{
		ProductID:   uuid.New(),
		ProductName: "Whey Isolate",
		UnitPrice:   decimal.RequireFromString("29.90"),
		Quantity:    2,
	})

	found, err := repo.FindOwned(ctx, userID, order.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Whey Isolate", found.Items[0].ProductName)

	_, err = repo.FindOwned(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDetailDTOTotals(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	order := seedOrder(t, db, userID, time.Now(),
		models.OrderItem{ProductID: uuid.New(), ProductName: "Whey", UnitPrice: decimal.RequireFromString("10.50"), Quantity: 2},
		models.OrderItem{ProductID: uuid.New(), ProductName: "BCAA", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
	)

	found, err := repo.FindOwned(ctx, userID, order.ID)
	require.NoError(t, err)

	detail := ToDetailDTO(*found)
	assert.True(t, detail.Total.Equal(decimal.RequireFromString("26.00")), "total %s", detail.Total)
	assert.Equal(t, 2, detail.ItemCount)
}
