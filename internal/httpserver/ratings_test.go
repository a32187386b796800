package httpserver

import (
	"errors"
	"net/http"
	"testing"

	ratingsvc "gursha-client/internal/service/rating"
)

func TestListRatings(t *testing.T) {
	ratings := &stubRatings{loaded: map[string]float64{"f1": 4.5}}
	router := newTestRouter(t, Deps{Ratings: ratings, Session: signedIn()})

	rec := perform(router, http.MethodGet, "/ratings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["f1"] != 4.5 {
		t.Fatalf("unexpected ledger %v", body)
	}
}

func TestSubmitRating(t *testing.T) {
	ratings := &stubRatings{submitAvg: 4.2}
	router := newTestRouter(t, Deps{Ratings: ratings, Session: signedIn()})

	rec := perform(router, http.MethodPost, "/foods/f1/rating", map[string]interface{}{"rating": 4.5})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["rating"] != 4.2 {
		t.Fatalf("expected server average in body, got %v", body)
	}
	if ratings.lastFood != "f1" || ratings.lastUser != "u1" || ratings.lastValue != 4.5 {
		t.Fatalf("unexpected submit call %+v", ratings)
	}
}

func TestSubmitRating_InvalidValue(t *testing.T) {
	ratings := &stubRatings{submitErr: ratingsvc.ErrInvalidValue}
	router := newTestRouter(t, Deps{Ratings: ratings, Session: signedIn()})

	rec := perform(router, http.MethodPost, "/foods/f1/rating", map[string]interface{}{"rating": 7.3})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestSubmitRating_BackendFailure(t *testing.T) {
	ratings := &stubRatings{submitErr: errors.New("backend down")}
	router := newTestRouter(t, Deps{Ratings: ratings, Session: signedIn()})

	rec := perform(router, http.MethodPost, "/foods/f1/rating", map[string]interface{}{"rating": 4})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestSubmitRating_RequiresSession(t *testing.T) {
	router := newTestRouter(t, Deps{})
	rec := perform(router, http.MethodPost, "/foods/f1/rating", map[string]interface{}{"rating": 4})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
