package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"gursha-client/internal/domain"
)

type foodLister interface {
	ListFoods(ctx context.Context) ([]domain.Food, error)
	FoodsByHotel(ctx context.Context, hotelID string) ([]domain.Food, error)
}

// Service holds the most recently fetched catalog snapshot. The snapshot is
// read-only to the rest of the subsystem; only Refresh and the
// server-confirmed average-rating update mutate it.
type Service struct {
	backend foodLister
	logger  *log.Logger

	mu    sync.RWMutex
	foods []domain.Food
}

func New(backend foodLister, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{backend: backend, logger: logger}
}

// Refresh replaces the snapshot with the backend's current catalog. A
// failure keeps the previous snapshot and surfaces as a page-level load
// error, never as a checkout error.
func (s *Service) Refresh(ctx context.Context) error {
	foods, err := s.backend.ListFoods(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	s.mu.Lock()
	s.foods = foods
	s.mu.Unlock()
	s.logger.Printf("catalog: refreshed count=%d", len(foods))
	return nil
}

// Snapshot returns the held catalog. The result is a copy; callers may not
// see later refreshes through it.
func (s *Service) Snapshot() []domain.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	foods := make([]domain.Food, len(s.foods))
	copy(foods, s.foods)
	return foods
}

// ByHotel fetches one hotel's menu straight from the backend; hotel pages
// do not go through the shared snapshot.
func (s *Service) ByHotel(ctx context.Context, hotelID string) ([]domain.Food, error) {
	return s.backend.FoodsByHotel(ctx, hotelID)
}

// SetAverageRating overwrites one item's average with the value the backend
// returned after a rating submission. The client never computes averages
// itself; it does not hold the full rating population.
func (s *Service) SetAverageRating(foodID string, average float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.foods {
		if s.foods[i].ID == foodID {
			s.foods[i].AverageRating = average
			return
		}
	}
}
