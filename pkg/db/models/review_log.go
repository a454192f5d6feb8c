package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLog is a customer review. Viewable stays false until a moderator
// approves the entry; only viewable reviews feed public listings and the
// average grade.
type ReviewLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_review_user_product"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_review_user_product"`
	User       *User     `gorm:"foreignKey:UserID"`
	Grade      int       `gorm:"column:grade;not null"`
	Comment    string    `gorm:"column:comment;not null;default:''"`
	Viewable   bool      `gorm:"column:viewable;not null;default:false"`
	ReviewedAt time.Time `gorm:"column:reviewed_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
