package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"gursha-client/internal/backend"
	"gursha-client/internal/domain"
	"gursha-client/internal/payment"
	cartsvc "gursha-client/internal/service/cart"
	"gursha-client/internal/service/session"
	"github.com/google/uuid"
)

// ErrEmptyCart distinguishes "nothing to check out" from a failed batch.
// No network call is made in this case.
var ErrEmptyCart = errors.New("cart is empty")

type cartStore interface {
	Snapshot(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

type foodSource interface {
	ListFoods(ctx context.Context) ([]domain.Food, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, in backend.CreateOrderInput) (*domain.Order, error)
}

type paymentInitiator interface {
	Initialize(ctx context.Context, in payment.InitRequest) (*payment.Transaction, error)
}

// Service converts a cart snapshot into a batch of independent
// order-creation calls and applies an all-or-nothing visible outcome to the
// cart.
type Service struct {
	cart     cartStore
	catalog  foodSource
	orders   orderCreator
	payments paymentInitiator
	logger   *log.Logger
}

func New(cart cartStore, catalog foodSource, orders orderCreator, payments paymentInitiator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{cart: cart, catalog: catalog, orders: orders, payments: payments, logger: logger}
}

// Outcome is the result of one order-creation attempt for one cart line.
type Outcome struct {
	Line  domain.CartLine `json:"line"`
	Order *domain.Order   `json:"order,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Result reports one checkout attempt. Failed lists the product names whose
// orders were not created; the per-line reasons live in Outcomes.
type Result struct {
	AttemptID   string    `json:"attemptId"`
	Outcomes    []Outcome `json:"outcomes"`
	Failed      []string  `json:"failed,omitempty"`
	CartCleared bool      `json:"cartCleared"`
}

// Succeeded reports whether every line's order was created.
func (r *Result) Succeeded() bool {
	return len(r.Failed) == 0
}

// Checkout reads the current cart, re-resolves every line against the live
// catalog, dispatches the resolved lines as concurrent order-creation calls,
// and waits for all outcomes before touching the cart. The cart is cleared
// only when every line succeeded; any failure leaves it completely
// unmodified, including lines whose own orders went through.
func (s *Service) Checkout(ctx context.Context, identity session.Identity) (*Result, error) {
	snapshot, err := s.cart.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	// Catalog identity is resolved fresh per attempt; the snapshot used for
	// display may be arbitrarily old by now.
	foods, catalogErr := s.catalog.ListFoods(ctx)
	if catalogErr != nil {
		s.logger.Printf("checkout: catalog fetch failed, all lines unresolved: %v", catalogErr)
	}
	byName := make(map[string]domain.Food, len(foods))
	for _, f := range foods {
		byName[f.Name] = f
	}

	result := &Result{
		AttemptID: uuid.NewString(),
		Outcomes:  make([]Outcome, len(snapshot)),
	}

	var wg sync.WaitGroup
	for i, line := range snapshot {
		result.Outcomes[i].Line = line

		food, ok := byName[line.Name]
		if !ok {
			if catalogErr != nil {
				result.Outcomes[i].Error = fmt.Sprintf("catalog unavailable: %v", catalogErr)
			} else {
				result.Outcomes[i].Error = "no longer in catalog"
			}
			continue
		}

		wg.Add(1)
		go func(i int, line domain.CartLine, food domain.Food) {
			defer wg.Done()
			order, err := s.orders.CreateOrder(ctx, backend.CreateOrderInput{
				UserID:         identity.UserID,
				FoodID:         food.ID,
				HotelID:        food.HotelID,
				Quantity:       line.Quantity,
				PriceCents:     food.PriceCents,
				IdempotencyKey: result.AttemptID + ":" + line.Name,
			})
			if err != nil {
				result.Outcomes[i].Error = err.Error()
				return
			}
			result.Outcomes[i].Order = order
		}(i, line, food)
	}
	wg.Wait()

	for _, o := range result.Outcomes {
		if o.Error != "" {
			result.Failed = append(result.Failed, o.Line.Name)
		}
	}

	if !result.Succeeded() {
		s.logger.Printf("checkout: attempt=%s failed lines=%v, cart preserved", result.AttemptID, result.Failed)
		return result, nil
	}

	if err := s.cart.Clear(ctx); err != nil {
		// The orders exist; only the local clear failed. Surface it so the
		// user does not re-submit the same batch.
		return result, fmt.Errorf("orders created but cart not cleared: %w", err)
	}
	result.CartCleared = true
	s.logger.Printf("checkout: attempt=%s created %d orders", result.AttemptID, len(result.Outcomes))
	return result, nil
}

// PaymentResult is a checkout attempt that went through the prepaid flow.
// RedirectURL is set only when the whole batch succeeded; handing the user
// to the payment page before the orders exist would strand the charge.
type PaymentResult struct {
	*Result
	TxRef       string `json:"txRef,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// CheckoutWithPayment initializes a hosted payment for the projected cart
// total, then runs the order batch. A payment-initialization failure creates
// no orders and leaves the cart untouched; a failed batch reports like a
// plain checkout and withholds the redirect.
func (s *Service) CheckoutWithPayment(ctx context.Context, identity session.Identity) (*PaymentResult, error) {
	snapshot, err := s.cart.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	tx, err := s.payments.Initialize(ctx, payment.InitRequest{
		AmountCents: cartsvc.Total(snapshot),
		Email:       identity.Email,
		FirstName:   identity.Username,
		LastName:    identity.Username,
		Phone:       identity.Phone,
		TxRef:       uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("initialize payment: %w", err)
	}

	result, err := s.Checkout(ctx, identity)
	if err != nil {
		return nil, err
	}
	pr := &PaymentResult{Result: result, TxRef: tx.TxRef}
	if result.Succeeded() {
		pr.RedirectURL = tx.CheckoutURL
	}
	return pr, nil
}
