package cart

import "gursha-client/internal/domain"

// Project joins cart lines with the catalog snapshot for display. Lines
// whose product left the catalog are kept and flagged stale; checkout
// re-resolves catalog identity on its own, so a stale flag never blocks it.
func Project(lines []domain.CartLine, foods []domain.Food) []domain.DisplayLine {
	byName := make(map[string]domain.Food, len(foods))
	for _, f := range foods {
		byName[f.Name] = f
	}

	display := make([]domain.DisplayLine, 0, len(lines))
	for _, line := range lines {
		d := domain.DisplayLine{CartLine: line}
		if f, ok := byName[line.Name]; ok {
			d.Pictures = f.Pictures
			d.CatalogCents = f.PriceCents
			d.AverageRating = f.AverageRating
		} else {
			d.Stale = true
		}
		display = append(display, d)
	}
	return display
}

// Total sums unit price times quantity over all lines, in cents. The same
// function feeds both the displayed total and the amount handed to payment
// initialization, so the two can never disagree.
func Total(lines []domain.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}
