package enums

import "fmt"

// OrderStatus tracks an order through its fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCancelling OrderStatus = "CANCELLING"
	OrderStatusRequested  OrderStatus = "REQUESTED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusCancelling,
	OrderStatusRequested,
	OrderStatusRefunded,
	OrderStatusCancelled,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusRefunded, OrderStatusCancelled, OrderStatusDelivered:
		return true
	}
	return false
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
