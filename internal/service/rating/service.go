package rating

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"gursha-client/internal/domain"
)

// ErrInvalidValue is returned for ratings outside 0-5 half-point steps.
var ErrInvalidValue = errors.New("rating must be between 0 and 5 in half steps")

type backendClient interface {
	ListUserRatings(ctx context.Context, userID string) ([]domain.RatingEntry, error)
	SubmitRating(ctx context.Context, foodID, userID string, value float64) (float64, error)
}

type averageSetter interface {
	SetAverageRating(foodID string, average float64)
}

// Ledger caches the signed-in user's last submitted rating per food, used
// to pre-fill rating widgets. No optimistic mutation: nothing local changes
// until the backend confirms a submission.
type Ledger struct {
	backend backendClient
	catalog averageSetter
	logger  *log.Logger

	mu      sync.RWMutex
	userID  string
	entries map[string]float64
}

func NewLedger(backend backendClient, catalog averageSetter, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Ledger{
		backend: backend,
		catalog: catalog,
		logger:  logger,
		entries: map[string]float64{},
	}
}

// Load syncs the ledger from the backend. A fetch failure is logged and
// leaves the ledger empty; it is never fatal to the page.
func (l *Ledger) Load(ctx context.Context, userID string) map[string]float64 {
	entries := map[string]float64{}
	fetched, err := l.backend.ListUserRatings(ctx, userID)
	if err != nil {
		l.logger.Printf("rating ledger: load user=%s error=%v", userID, err)
	} else {
		for _, e := range fetched {
			entries[e.FoodID] = e.Value
		}
	}

	l.mu.Lock()
	l.userID = userID
	l.entries = entries
	l.mu.Unlock()

	return copyEntries(entries)
}

// Submit sends the rating and, only on backend success, updates both the
// ledger entry and the catalog item's average with the returned value. On
// failure both stay exactly as they were; retry is simply submitting again.
func (l *Ledger) Submit(ctx context.Context, foodID, userID string, value float64) (float64, error) {
	if !domain.ValidRating(value) {
		return 0, ErrInvalidValue
	}

	average, err := l.backend.SubmitRating(ctx, foodID, userID, value)
	if err != nil {
		return 0, fmt.Errorf("submit rating: %w", err)
	}

	l.mu.Lock()
	if l.userID == userID {
		l.entries[foodID] = value
	}
	l.mu.Unlock()

	if l.catalog != nil {
		l.catalog.SetAverageRating(foodID, average)
	}
	return average, nil
}

// Get returns the user's cached rating for one food, zero when unknown.
func (l *Ledger) Get(foodID string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries[foodID]
}

// All returns a copy of the cached ledger.
func (l *Ledger) All() map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyEntries(l.entries)
}

func copyEntries(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
