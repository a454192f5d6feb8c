package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/nutrimart/nutrimart-backend/pkg/db/models"
	"github.com/nutrimart/nutrimart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// OrderItemDTO is one snapshot line of a placed order.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderSummaryDTO is the order-history row.
type OrderSummaryDTO struct {
	ID        uuid.UUID         `json:"id"`
	StoreName string            `json:"store_name"`
	Status    enums.OrderStatus `json:"status"`
	Comment   string            `json:"comment"`
	OrderedAt time.Time         `json:"ordered_at"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
}

// OrderDetailDTO is the full order view.
type OrderDetailDTO struct {
	OrderSummaryDTO
	Items []OrderItemDTO `json:"items"`
}

// ToSummaryDTO maps an order with preloaded items to the history row shape.
func ToSummaryDTO(order models.Order) OrderSummaryDTO {
	dto := OrderSummaryDTO{
		ID:        order.ID,
		Status:    order.Status,
		Comment:   order.Comment,
		OrderedAt: order.OrderedAt,
		ItemCount: len(order.Items),
		Total:     orderTotal(order.Items),
	}
	if order.Store != nil {
		dto.StoreName = order.Store.Name
	}
	return dto
}

// ToDetailDTO maps the full order including its snapshot lines.
func ToDetailDTO(order models.Order) OrderDetailDTO {
	detail := OrderDetailDTO{OrderSummaryDTO: ToSummaryDTO(order)}
	detail.Items = make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		detail.Items = append(detail.Items, OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return detail
}

func orderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
