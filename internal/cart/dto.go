package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ItemDTO is one product line of the cart view.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Photo     string          `json:"photo,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartDTO is the full cart view with line subtotals and the running total.
type CartDTO struct {
	ID        uuid.UUID       `json:"id"`
	StoreID   *uuid.UUID      `json:"store_id,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	Items     []ItemDTO       `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// ToItemDTO maps a cart item row to its view, pricing against the loaded
// product.
func ToItemDTO(item models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.CreatedAt,
	}
	if item.Product != nil {
		dto.Name = item.Product.Name
		dto.Photo = item.Product.Photo
		dto.UnitPrice = item.Product.Price
	}
	dto.Subtotal = dto.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return dto
}

// ToCartDTO maps the cart with all its lines and sums the total.
func ToCartDTO(cart models.Cart) CartDTO {
	dto := CartDTO{
		ID:      cart.ID,
		StoreID: cart.StoreID,
		Comment: cart.Comment,
		Items:   make([]ItemDTO, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for _, item := range cart.Items {
		line := ToItemDTO(item)
		total = total.Add(line.Subtotal)
		dto.ItemCount += line.Quantity
		dto.Items = append(dto.Items, line)
	}
	dto.Total = total
	return dto
}
