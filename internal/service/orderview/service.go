package orderview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gursha-client/internal/domain"
)

type orderBackend interface {
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListPendingOrders(ctx context.Context) ([]domain.Order, error)
	ListAcceptedOrders(ctx context.Context, deliveryID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	AcceptOrder(ctx context.Context, orderID, deliveryID string) (*domain.Order, error)
	RejectOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// View is one backend order classified for display: which actions the
// current status permits. The backend stays the sole arbiter of every
// transition; a View only gates what the UI offers.
type View struct {
	domain.Order
	CanCancel    bool `json:"canCancel"`
	ShowDelivery bool `json:"showDelivery"`
	Terminal     bool `json:"terminal"`
}

// Classify maps one order record onto its view.
func Classify(o domain.Order) View {
	return View{
		Order:        o,
		CanCancel:    o.Status.CanCancel(),
		ShowDelivery: o.Status == domain.OrderAccepted,
		Terminal:     o.Status.Terminal(),
	}
}

// Service is a passive observer of backend order state plus the two
// client-initiated transitions, cancel and accept.
type Service struct {
	backend orderBackend
	logger  *log.Logger
}

func New(backend orderBackend, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{backend: backend, logger: logger}
}

// Mine lists the customer's own orders.
func (s *Service) Mine(ctx context.Context, userID string) ([]View, error) {
	orders, err := s.backend.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return classifyAll(orders), nil
}

// Pending lists orders no delivery user has taken yet.
func (s *Service) Pending(ctx context.Context) ([]View, error) {
	orders, err := s.backend.ListPendingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	return classifyAll(orders), nil
}

// Accepted lists the orders the delivery user has taken.
func (s *Service) Accepted(ctx context.Context, deliveryID string) ([]View, error) {
	orders, err := s.backend.ListAcceptedOrders(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list accepted orders: %w", err)
	}
	return classifyAll(orders), nil
}

// Cancel requests the pending→rejected transition. If the backend reports
// the order already left pending, the authoritative status is re-fetched
// and returned alongside domain.ErrConflict; the caller must not assume the
// cancel took effect.
func (s *Service) Cancel(ctx context.Context, orderID string) (*View, error) {
	order, err := s.backend.RejectOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.refreshAfterConflict(ctx, orderID, err)
		}
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	v := Classify(*order)
	return &v, nil
}

// Accept requests assignment of a pending order to the delivery user. The
// order is never shown as accepted until the backend confirms; losing the
// race surfaces as domain.ErrConflict with the refreshed record.
func (s *Service) Accept(ctx context.Context, orderID, deliveryID string) (*View, error) {
	order, err := s.backend.AcceptOrder(ctx, orderID, deliveryID)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.refreshAfterConflict(ctx, orderID, err)
		}
		return nil, fmt.Errorf("accept order: %w", err)
	}
	v := Classify(*order)
	return &v, nil
}

func (s *Service) refreshAfterConflict(ctx context.Context, orderID string, cause error) (*View, error) {
	refreshed, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		s.logger.Printf("orderview: refresh after conflict order=%s error=%v", orderID, err)
		return nil, cause
	}
	v := Classify(*refreshed)
	return &v, cause
}

func classifyAll(orders []domain.Order) []View {
	views := make([]View, 0, len(orders))
	for _, o := range orders {
		views = append(views, Classify(o))
	}
	return views
}
