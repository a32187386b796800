package backend

import (
	"context"
	"net/http"

	"gursha-client/internal/domain"
)

type foodDTO struct {
	ID          string   `json:"id"`
	HotelID     string   `json:"hotelId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Pictures    []string `json:"pictures"`
	Rating      float64  `json:"rating"`
}

func (d foodDTO) toDomain() domain.Food {
	return domain.Food{
		ID:            d.ID,
		HotelID:       d.HotelID,
		Name:          d.Name,
		Description:   d.Description,
		PriceCents:    d.PriceCents,
		Pictures:      d.Pictures,
		AverageRating: d.Rating,
	}
}

// ListFoods fetches the full catalog.
func (c *Client) ListFoods(ctx context.Context) ([]domain.Food, error) {
	var dtos []foodDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/foods/all", nil, nil, &dtos, false); err != nil {
		return nil, err
	}
	foods := make([]domain.Food, 0, len(dtos))
	for _, d := range dtos {
		foods = append(foods, d.toDomain())
	}
	return foods, nil
}

// FoodsByHotel fetches the catalog entries for one hotel.
func (c *Client) FoodsByHotel(ctx context.Context, hotelID string) ([]domain.Food, error) {
	var dtos []foodDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/foods/"+hotelID, nil, nil, &dtos, false); err != nil {
		return nil, err
	}
	foods := make([]domain.Food, 0, len(dtos))
	for _, d := range dtos {
		foods = append(foods, d.toDomain())
	}
	return foods, nil
}
