package httpserver

import (
	"net/http"
	"testing"

	"gursha-client/internal/domain"
)

func TestGetCart(t *testing.T) {
	cart := &stubCart{lines: []domain.CartLine{
		{Name: "Burger", PriceCents: 500, Quantity: 2},
		{Name: "Gone", PriceCents: 300, Quantity: 1},
	}}
	catalog := &stubCatalog{foods: []domain.Food{
		{ID: "f1", Name: "Burger", PriceCents: 500, AverageRating: 4.5},
	}}
	router := newTestRouter(t, Deps{Cart: cart, Catalog: catalog})

	rec := perform(router, http.MethodGet, "/cart", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["totalCents"] != float64(1300) {
		t.Fatalf("expected total 1300, got %v", body["totalCents"])
	}
	lines, ok := body["lines"].([]interface{})
	if !ok || len(lines) != 2 {
		t.Fatalf("expected 2 display lines, got %v", body["lines"])
	}
	first := lines[0].(map[string]interface{})
	second := lines[1].(map[string]interface{})
	if first["stale"] != false || second["stale"] != true {
		t.Fatalf("unexpected stale flags: %v / %v", first["stale"], second["stale"])
	}
}

func TestAddCartItem(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(t, Deps{Cart: cart})

	rec := perform(router, http.MethodPost, "/cart/items", map[string]interface{}{
		"name":       "Burger",
		"priceCents": 500,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(cart.added) != 1 || cart.added[0].Name != "Burger" || cart.added[0].PriceCents != 500 {
		t.Fatalf("unexpected add %+v", cart.added)
	}
}

func TestAddCartItem_MissingName(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(t, Deps{Cart: cart})

	rec := perform(router, http.MethodPost, "/cart/items", map[string]interface{}{"priceCents": 500})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(cart.added) != 0 {
		t.Fatalf("expected no mutation")
	}
}

func TestSetCartQuantity(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(t, Deps{Cart: cart})

	rec := perform(router, http.MethodPut, "/cart/items/Burger", map[string]interface{}{"quantity": 3})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if cart.setName != "Burger" || cart.setQty != 3 {
		t.Fatalf("unexpected set %s=%d", cart.setName, cart.setQty)
	}
}

func TestRemoveCartItem(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(t, Deps{Cart: cart})

	rec := perform(router, http.MethodDelete, "/cart/items/Burger", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(cart.removed) != 1 || cart.removed[0] != "Burger" {
		t.Fatalf("unexpected removals %v", cart.removed)
	}
}

func TestClearCart(t *testing.T) {
	cart := &stubCart{}
	router := newTestRouter(t, Deps{Cart: cart})

	rec := perform(router, http.MethodDelete, "/cart", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !cart.cleared {
		t.Fatalf("expected cart cleared")
	}
}
