package model

import "strings"

// OrderStatusCompleted is the status the history view filters on.
const OrderStatusCompleted = "completed"

// Order is a customer order returned by the orders endpoint.
// Status is server-defined and passed through as is.
type Order struct {
	ID              int64  `json:"id"`
	TotalPrice      Amount `json:"total_price"`
	Status          string `json:"status"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

// Address returns the delivery address, or "" when it is absent or blank.
func (o Order) Address() string {
	return strings.TrimSpace(o.DeliveryAddress)
}
