package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"gursha-client/internal/domain"
)

const storeKey = "cart"

type kvRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store owns the canonical cart line list. All views read through it, and
// every mutation is a full read-modify-write of the stored list under one
// critical section, written through to durable storage before returning.
// The critical section never spans a network call to the ordering backend.
type Store struct {
	kv     kvRepo
	logger *log.Logger

	mu sync.Mutex

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewStore builds a Store over the durable key-value repository.
func NewStore(kv kvRepo, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{kv: kv, logger: logger}
}

// AddOrIncrement adds one unit of the named product, inserting a new line at
// quantity 1 when absent. Malformed input is a no-op, not an error.
func (s *Store) AddOrIncrement(ctx context.Context, name string, priceCents int64) error {
	name = strings.TrimSpace(name)
	if name == "" || priceCents < 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range lines {
		if lines[i].Name == name {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{Name: name, PriceCents: priceCents, Quantity: 1})
	}
	if err := s.store(ctx, lines); err != nil {
		return err
	}
	s.notify()
	return nil
}

// SetQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line. Idempotent; unknown names are a no-op.
func (s *Store) SetQuantity(ctx context.Context, name string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx)
	if err != nil {
		return err
	}
	next := lines[:0]
	changed := false
	for _, line := range lines {
		if line.Name == name {
			changed = true
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		next = append(next, line)
	}
	if !changed {
		return nil
	}
	if err := s.store(ctx, next); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Remove deletes the named line if present.
func (s *Store) Remove(ctx context.Context, name string) error {
	return s.SetQuantity(ctx, name, 0)
}

// Snapshot returns the current lines in stable display order.
func (s *Store) Snapshot(ctx context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Clear empties the cart. Used after a fully successful checkout and by
// explicit user action.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store(ctx, []domain.CartLine{}); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Subscribe returns a channel that receives a tick after every committed
// mutation, so independent views can re-read the shared state instead of
// re-parsing storage themselves.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// load reads and sanitizes the stored list. A missing key is an empty cart.
// Sanitizing keeps the invariants (unique names, positive quantities) even
// if the stored document predates them.
func (s *Store) load(ctx context.Context) ([]domain.CartLine, error) {
	doc, err := s.kv.Get(ctx, storeKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(doc, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	seen := make(map[string]int, len(lines))
	clean := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line.Name) == "" || line.Quantity <= 0 || line.PriceCents < 0 {
			continue
		}
		if i, dup := seen[line.Name]; dup {
			clean[i].Quantity += line.Quantity
			continue
		}
		seen[line.Name] = len(clean)
		clean = append(clean, line)
	}
	return clean, nil
}

func (s *Store) store(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	doc, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Put(ctx, storeKey, doc); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
