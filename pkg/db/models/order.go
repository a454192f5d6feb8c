package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nutrimart/nutrimart-backend/pkg/enums"
)

// Order is a placed purchase. Orders only come into existence at checkout;
// in-progress selections live in Cart.
type Order struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	StoreID   uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	Store     *Store            `gorm:"foreignKey:StoreID"`
	Status    enums.OrderStatus `gorm:"column:status;not null"`
	Comment   string            `gorm:"column:comment;not null;default:''"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	OrderedAt time.Time         `gorm:"column:ordered_at;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
