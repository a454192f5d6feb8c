package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductSummary is the compact product shape embedded in wishlist entries.
type ProductSummary struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Photo string          `json:"photo"`
}

// ItemDTO is one saved wishlist entry.
type ItemDTO struct {
	ID       uuid.UUID      `json:"id"`
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
	AddedAt  time.Time      `json:"added_at"`
}

// ToItemDTO maps a model row to its public shape.
func ToItemDTO(item models.WishlistItem) ItemDTO {
	dto := ItemDTO{
		ID:       item.ID,
		Quantity: item.Quantity,
		AddedAt:  item.CreatedAt,
	}
	if item.Product != nil {
		dto.Product = ProductSummary{
			ID:    item.Product.ID,
			Name:  item.Product.Name,
			Price: item.Product.Price,
			Photo: item.Product.Photo,
		}
	}
	return dto
}
