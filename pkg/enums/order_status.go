package enums

import "fmt"

// OrderStatus describes the lifecycle stage of a placed order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusProcessing,
}

// IsValid reports whether the value matches the canonical order status enum.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts the raw string to OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// String returns the raw enum value.
func (o OrderStatus) String() string {
	return string(o)
}
