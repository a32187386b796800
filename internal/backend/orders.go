package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gursha-client/internal/domain"
)

// CreateOrderInput is one order-creation request, built transiently from a
// cart line at checkout time. The idempotency key is unique per cart line
// per checkout attempt so the backend can dedupe a user-initiated retry.
type CreateOrderInput struct {
	UserID         string
	FoodID         string
	HotelID        string
	Quantity       int
	PriceCents     int64
	IdempotencyKey string
}

type orderDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FoodID     string    `json:"foodId"`
	HotelID    string    `json:"hotelId"`
	Quantity   int       `json:"quantity"`
	PriceCents int64     `json:"priceCents"`
	Status     string    `json:"status"`
	DeliveryID string    `json:"deliveryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (d orderDTO) toDomain() domain.Order {
	return domain.Order{
		ID:         d.ID,
		UserID:     d.UserID,
		FoodID:     d.FoodID,
		HotelID:    d.HotelID,
		Quantity:   d.Quantity,
		PriceCents: d.PriceCents,
		Status:     domain.OrderStatus(d.Status),
		DeliveryID: d.DeliveryID,
		CreatedAt:  d.CreatedAt,
	}
}

type createOrderRequest struct {
	UserID     string `json:"userId"`
	FoodID     string `json:"foodId"`
	HotelID    string `json:"hotelId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// ordersEnvelope wraps list/transition responses from the backend.
type ordersEnvelope struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []orderDTO `json:"data"`
}

type transitionEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    orderDTO `json:"data"`
}

// CreateOrder submits one order. Any non-2xx response is a failure for the
// corresponding cart line; the caller decides what to do with the batch.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	headers := map[string]string{}
	if in.IdempotencyKey != "" {
		headers["Idempotency-Key"] = in.IdempotencyKey
	}
	var dto orderDTO
	err := c.doJSON(ctx, http.MethodPost, "/api/orders/create", headers, createOrderRequest{
		UserID:     in.UserID,
		FoodID:     in.FoodID,
		HotelID:    in.HotelID,
		Quantity:   in.Quantity,
		PriceCents: in.PriceCents,
	}, &dto, true)
	if err != nil {
		return nil, err
	}
	order := dto.toDomain()
	return &order, nil
}

// GetOrder fetches one order record, used to re-sync after a refused
// transition.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var dto orderDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+orderID, nil, nil, &dto, true); err != nil {
		return nil, err
	}
	order := dto.toDomain()
	return &order, nil
}

// ListUserOrders fetches the customer's own orders.
func (c *Client) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/user/"+userID, nil, nil, &dtos, true); err != nil {
		return nil, err
	}
	return toDomainOrders(dtos), nil
}

// ListPendingOrders fetches all orders awaiting a delivery user.
func (c *Client) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	var env ordersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/pending-orders", nil, nil, &env, false); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("list pending orders: %s", env.Message)
	}
	return toDomainOrders(env.Data), nil
}

// ListAcceptedOrders fetches the orders a delivery user has taken.
func (c *Client) ListAcceptedOrders(ctx context.Context, deliveryID string) ([]domain.Order, error) {
	var env ordersEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/user/"+deliveryID+"/accepted-orders", nil, nil, &env, true); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("list accepted orders: %s", env.Message)
	}
	return toDomainOrders(env.Data), nil
}

// AcceptOrder asks the backend to assign the order to the delivery user.
// The backend arbitrates the race between delivery users; a refusal comes
// back as domain.ErrConflict.
func (c *Client) AcceptOrder(ctx context.Context, orderID, deliveryID string) (*domain.Order, error) {
	var env transitionEnvelope
	err := c.doJSON(ctx, http.MethodPut, "/api/orders/accept/"+orderID, nil, map[string]string{"deliveryId": deliveryID}, &env, true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("accept order %s: %s: %w", orderID, env.Message, domain.ErrConflict)
	}
	order := env.Data.toDomain()
	return &order, nil
}

// RejectOrder asks the backend to cancel the order. Refusals (the order
// already left pending) come back as domain.ErrConflict.
func (c *Client) RejectOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var env transitionEnvelope
	err := c.doJSON(ctx, http.MethodPut, "/api/orders/reject/"+orderID, nil, nil, &env, true)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("reject order %s: %s: %w", orderID, env.Message, domain.ErrConflict)
	}
	order := env.Data.toDomain()
	return &order, nil
}

func toDomainOrders(dtos []orderDTO) []domain.Order {
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders
}
