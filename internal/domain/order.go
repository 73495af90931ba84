package domain

import "time"

type OrderStatus string

const (
	// OrderStatusPending exists in the status vocabulary but no operation
	// produces it; PlaceOrder always starts orders at Processing.
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// CanTransition reports whether an order may move from one status to
// another. Only single forward steps are allowed; Delivered is terminal.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusProcessing:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

func (s OrderStatus) String() string {
	return string(s)
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is immutable once placed; only its Status advances.
type Order struct {
	ID       string      `json:"id"`
	Items    []CartLine  `json:"items"`
	Total    float64     `json:"total"`
	Status   OrderStatus `json:"status"`
	Customer Customer    `json:"customer"`
	Date     string      `json:"date"`
}

// OrderDateFormat is the display format stamped onto orders at creation.
const OrderDateFormat = "Jan 2, 2006"

func FormatOrderDate(t time.Time) string {
	return t.Format(OrderDateFormat)
}
