package backend

import (
	"context"
	"net/http"

	"gursha-client/internal/domain"
)

type ratingDTO struct {
	FoodID string  `json:"foodId"`
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
}

type submitRatingRequest struct {
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
}

type submitRatingResponse struct {
	Rating float64 `json:"rating"`
}

// ListUserRatings fetches every rating the user has submitted.
func (c *Client) ListUserRatings(ctx context.Context, userID string) ([]domain.RatingEntry, error) {
	var dtos []ratingDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/foodRatings/ratings/"+userID, nil, nil, &dtos, false); err != nil {
		return nil, err
	}
	entries := make([]domain.RatingEntry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, domain.RatingEntry{FoodID: d.FoodID, UserID: d.UserID, Value: d.Rating})
	}
	return entries, nil
}

// SubmitRating records the user's rating for one food and returns the new
// authoritative average computed by the backend.
func (c *Client) SubmitRating(ctx context.Context, foodID, userID string, value float64) (float64, error) {
	var resp submitRatingResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/foodRatings/"+foodID+"/rate", nil, submitRatingRequest{
		UserID: userID,
		Rating: value,
	}, &resp, false)
	if err != nil {
		return 0, err
	}
	return resp.Rating, nil
}
