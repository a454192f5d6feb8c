package stores

import (
	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
)

// StoreDTO is the public shape of a retail location.
type StoreDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	OpenHours string    `json:"open_hours"`
}

func toDTO(store models.Store) StoreDTO {
	return StoreDTO{
		ID:        store.ID,
		Name:      store.Name,
		Address:   store.Address,
		Phone:     store.Phone,
		OpenHours: store.OpenHours,
	}
}
