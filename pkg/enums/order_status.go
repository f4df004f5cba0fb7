package enums

import "fmt"

// OrderStatus tracks the order lifecycle. Cancelled and Returned are terminal.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "Placed"
	OrderStatusCancelled OrderStatus = "Cancelled"
	OrderStatusReturned  OrderStatus = "Returned"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
