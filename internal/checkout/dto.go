package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CheckoutInput carries the pickup store choice and an optional comment.
type CheckoutInput struct {
	StoreID *uuid.UUID `json:"store_id" validate:"required"`
	Comment string     `json:"comment" validate:"max=2000"`
}

// ShortfallDTO names one product the chosen store cannot fulfil.
type ShortfallDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
}

// ResultDTO acknowledges a placed order.
type ResultDTO struct {
	OrderID   uuid.UUID         `json:"order_id"`
	StoreID   uuid.UUID         `json:"store_id"`
	Status    enums.OrderStatus `json:"status"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
	OrderedAt time.Time         `json:"ordered_at"`
}
