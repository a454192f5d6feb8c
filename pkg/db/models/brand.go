package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a supplement manufacturer.
type Brand struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;not null;uniqueIndex"`
	Description string     `gorm:"column:description;not null;default:''"`
	Photo       string     `gorm:"column:photo;not null;default:''"`
	CountryID   *uuid.UUID `gorm:"column:country_id;type:uuid"`
	Country     *Country   `gorm:"foreignKey:CountryID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
