package domain

// CartLine is one product entry in the locally persisted cart. Name doubles
// as the product key: at most one line exists per name, and a line never
// survives with quantity <= 0.
type CartLine struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// DisplayLine is a cart line joined with live catalog data for rendering.
// Stale marks lines whose product no longer appears in the catalog snapshot;
// they still render from cart data and do not block checkout.
type DisplayLine struct {
	CartLine
	Pictures      []string `json:"pictures,omitempty"`
	CatalogCents  int64    `json:"catalogCents,omitempty"`
	AverageRating float64  `json:"averageRating,omitempty"`
	Stale         bool     `json:"stale"`
}
