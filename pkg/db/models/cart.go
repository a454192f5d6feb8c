package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutrimart/nutrimart-backend/pkg/enums"
)

// Cart holds a user's in-progress selection. Each user has at most one
// active cart (partial unique index in the SQL migration); converted carts
// stay behind as history of what became an order.
type Cart struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Status    enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	StoreID   *uuid.UUID       `gorm:"column:store_id;type:uuid"`
	Comment   string           `gorm:"column:comment;not null;default:''"`
	Items     []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
