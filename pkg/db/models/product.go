package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Category    *ProductCategory `gorm:"foreignKey:CategoryID"`
	BrandID     *uuid.UUID       `gorm:"column:brand_id;type:uuid"`
	Brand       *Brand           `gorm:"foreignKey:BrandID"`
	Name        string           `gorm:"column:name;not null"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(15,2);not null"`
	Photo       string           `gorm:"column:photo;not null;default:''"`
	Certificate string           `gorm:"column:certificate;not null;default:''"`
	Description string           `gorm:"column:description;not null;default:''"`
	Composition []ProductComposition `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
