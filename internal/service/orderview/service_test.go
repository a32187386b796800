package orderview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gursha-client/internal/domain"
)

type stubBackend struct {
	userOrders     []domain.Order
	pendingOrders  []domain.Order
	acceptedOrders []domain.Order

	order     *domain.Order
	getErr    error
	acceptErr error
	rejectErr error

	accepted *domain.Order
	rejected *domain.Order
}

func (s *stubBackend) ListUserOrders(_ context.Context, _ string) ([]domain.Order, error) {
	return s.userOrders, nil
}

func (s *stubBackend) ListPendingOrders(_ context.Context) ([]domain.Order, error) {
	return s.pendingOrders, nil
}

func (s *stubBackend) ListAcceptedOrders(_ context.Context, _ string) ([]domain.Order, error) {
	return s.acceptedOrders, nil
}

func (s *stubBackend) GetOrder(_ context.Context, _ string) (*domain.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubBackend) AcceptOrder(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.acceptErr != nil {
		return nil, s.acceptErr
	}
	return s.accepted, nil
}

func (s *stubBackend) RejectOrder(_ context.Context, _ string) (*domain.Order, error) {
	if s.rejectErr != nil {
		return nil, s.rejectErr
	}
	return s.rejected, nil
}

func TestClassify(t *testing.T) {
	cases := []struct {
		status       domain.OrderStatus
		canCancel    bool
		showDelivery bool
		terminal     bool
	}{
		{domain.OrderPending, true, false, false},
		{domain.OrderAccepted, false, true, false},
		{domain.OrderCompleted, false, false, true},
		{domain.OrderRejected, false, false, true},
	}
	for _, c := range cases {
		v := Classify(domain.Order{ID: "o1", Status: c.status})
		if v.CanCancel != c.canCancel || v.ShowDelivery != c.showDelivery || v.Terminal != c.terminal {
			t.Fatalf("status %s: unexpected view %+v", c.status, v)
		}
	}
}

func TestMine(t *testing.T) {
	be := &stubBackend{userOrders: []domain.Order{
		{ID: "o1", Status: domain.OrderPending},
		{ID: "o2", Status: domain.OrderAccepted},
	}}
	svc := New(be, nil)

	views, err := svc.Mine(context.Background(), "u1")
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if len(views) != 2 || !views[0].CanCancel || !views[1].ShowDelivery {
		t.Fatalf("unexpected views %+v", views)
	}
}

func TestCancel_Success(t *testing.T) {
	be := &stubBackend{rejected: &domain.Order{ID: "o1", Status: domain.OrderRejected}}
	svc := New(be, nil)

	v, err := svc.Cancel(context.Background(), "o1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if v.Status != domain.OrderRejected || !v.Terminal {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestCancel_ConflictReturnsRefreshedStatus(t *testing.T) {
	be := &stubBackend{
		rejectErr: fmt.Errorf("cancel rejected: %w", domain.ErrConflict),
		order:     &domain.Order{ID: "o1", Status: domain.OrderAccepted},
	}
	svc := New(be, nil)

	v, err := svc.Cancel(context.Background(), "o1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	// the caller still gets the authoritative current state
	if v == nil || v.Status != domain.OrderAccepted || !v.ShowDelivery {
		t.Fatalf("expected refreshed accepted view, got %+v", v)
	}
}

func TestAccept_ConflictReturnsRefreshedStatus(t *testing.T) {
	be := &stubBackend{
		acceptErr: fmt.Errorf("accept rejected: %w", domain.ErrConflict),
		order:     &domain.Order{ID: "o1", Status: domain.OrderAccepted, DeliveryID: "other"},
	}
	svc := New(be, nil)

	v, err := svc.Accept(context.Background(), "o1", "d1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if v == nil || v.DeliveryID != "other" {
		t.Fatalf("expected refreshed view with winning courier, got %+v", v)
	}
}

func TestCancel_ConflictWithFailedRefresh(t *testing.T) {
	be := &stubBackend{
		rejectErr: fmt.Errorf("cancel rejected: %w", domain.ErrConflict),
		getErr:    errors.New("backend down"),
	}
	svc := New(be, nil)

	v, err := svc.Cancel(context.Background(), "o1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected original conflict error, got %v", err)
	}
	if v != nil {
		t.Fatalf("expected no view when refresh failed, got %+v", v)
	}
}
