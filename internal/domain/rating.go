package domain

// RatingEntry is one user's last submitted rating for one food item.
// One entry per (FoodID, UserID); resubmitting overwrites.
type RatingEntry struct {
	FoodID string  `json:"foodId"`
	UserID string  `json:"userId"`
	Value  float64 `json:"rating"`
}

// ValidRating reports whether v is within 0-5 in half-point steps.
func ValidRating(v float64) bool {
	if v < 0 || v > 5 {
		return false
	}
	doubled := v * 2
	return doubled == float64(int64(doubled))
}
