package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are generated client-side so rows created through gorm carry a key on
// every dialect; the SQL schema keeps gen_random_uuid() as a safety net for
// out-of-band inserts.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *User) BeforeCreate(*gorm.DB) error            { ensureID(&m.ID); return nil }
func (m *Store) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *ProductCategory) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *Country) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *Brand) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *Nutrient) BeforeCreate(*gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *Product) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *ProductComposition) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
func (m *StoreInventory) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *Cart) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *CartItem) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *Order) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *OrderItem) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *WishlistItem) BeforeCreate(*gorm.DB) error   { ensureID(&m.ID); return nil }
func (m *ReviewLog) BeforeCreate(*gorm.DB) error      { ensureID(&m.ID); return nil }
