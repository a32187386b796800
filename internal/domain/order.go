package domain

import "time"

// OrderStatus is owned by the backend; the gateway only reads it and
// requests transitions.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderCompleted OrderStatus = "completed"
	OrderRejected  OrderStatus = "rejected"
)

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderRejected
}

// CanCancel reports whether a customer cancel request is permitted.
// Only pending orders may be cancelled; the backend remains the arbiter.
func (s OrderStatus) CanCancel() bool {
	return s == OrderPending
}

// CanAccept reports whether a delivery user may request to take the order.
func (s OrderStatus) CanAccept() bool {
	return s == OrderPending
}

// Order is a backend order record.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	FoodID     string      `json:"foodId"`
	HotelID    string      `json:"hotelId"`
	Quantity   int         `json:"quantity"`
	PriceCents int64       `json:"priceCents"`
	Status     OrderStatus `json:"status"`
	DeliveryID string      `json:"deliveryId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
