package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductComposition records the nutrient amount per serving of a product.
type ProductComposition struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_composition_product_nutrient"`
	NutrientID uuid.UUID       `gorm:"column:nutrient_id;type:uuid;not null;uniqueIndex:idx_composition_product_nutrient"`
	Nutrient   *Nutrient       `gorm:"foreignKey:NutrientID"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(15,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
