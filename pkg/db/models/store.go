package models

import (
	"time"

	"github.com/google/uuid"
)

// Store is a physical retail location orders are fulfilled from.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address;not null"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	OpenHours string    `gorm:"column:open_hours;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
