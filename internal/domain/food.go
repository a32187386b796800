package domain

// Food is a catalog item as served by the ordering backend. Read-only to
// this gateway; AverageRating is only ever overwritten with a value the
// backend returned, never recomputed locally.
type Food struct {
	ID            string   `json:"id"`
	HotelID       string   `json:"hotelId"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	PriceCents    int64    `json:"priceCents"`
	Pictures      []string `json:"pictures,omitempty"`
	AverageRating float64  `json:"averageRating"`
}
