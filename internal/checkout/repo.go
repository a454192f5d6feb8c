package checkout

import (
	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes row locks on postgres. sqlite has no FOR UPDATE; its
// writes serialize on the database handle instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// loadActiveCartTx re-reads the cart inside the checkout transaction so the
// fulfilment decision sees a consistent snapshot.
func loadActiveCartTx(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ? AND status = ?", userID, enums.CartStatusActive).
		First(&cart).
		Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// lockInventoryTx loads and locks the store's inventory rows for the given
// products, keyed by product id. Products without a row are simply absent
// from the map and read as zero stock.
func lockInventoryTx(tx *gorm.DB, storeID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*models.StoreInventory, error) {
	var rows []models.StoreInventory
	err := lockForUpdate(tx).
		Where("store_id = ? AND product_id IN ?", storeID, productIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uuid.UUID]*models.StoreInventory, len(rows))
	for i := range rows {
		byProduct[rows[i].ProductID] = &rows[i]
	}
	return byProduct, nil
}

// decrementInventoryTx subtracts the fulfilled quantity from one inventory
// row. Callers hold the row lock and have already verified availability.
func decrementInventoryTx(tx *gorm.DB, inventoryID uuid.UUID, by int) error {
	return tx.
		Model(&models.StoreInventory{}).
		Where("id = ?", inventoryID).
		Update("quantity", gorm.Expr("quantity - ?", by)).
		Error
}

// createOrderTx inserts the order with its snapshot lines.
func createOrderTx(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

// markConvertedTx retires the cart once its order exists.
func markConvertedTx(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.
		Model(&models.Cart{}).
		Where("id = ? AND status = ?", cartID, enums.CartStatusActive).
		Update("status", enums.CartStatusConverted).
		Error
}
