package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"gursha-client/internal/domain"
	"gursha-client/internal/service/checkout"
	"gursha-client/internal/service/orderview"
	"gursha-client/internal/service/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartStore is the persistent cart consumed by the cart endpoints.
type CartStore interface {
	AddOrIncrement(ctx context.Context, name string, priceCents int64) error
	SetQuantity(ctx context.Context, name string, quantity int) error
	Remove(ctx context.Context, name string) error
	Snapshot(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

// CheckoutService runs order batches for the current identity.
type CheckoutService interface {
	Checkout(ctx context.Context, identity session.Identity) (*checkout.Result, error)
	CheckoutWithPayment(ctx context.Context, identity session.Identity) (*checkout.PaymentResult, error)
}

// CatalogService serves the shared catalog snapshot.
type CatalogService interface {
	Refresh(ctx context.Context) error
	Snapshot() []domain.Food
	ByHotel(ctx context.Context, hotelID string) ([]domain.Food, error)
}

// RatingLedger serves the per-user rating cache.
type RatingLedger interface {
	Load(ctx context.Context, userID string) map[string]float64
	Submit(ctx context.Context, foodID, userID string, value float64) (float64, error)
}

// OrderViews classifies backend orders and forwards transitions.
type OrderViews interface {
	Mine(ctx context.Context, userID string) ([]orderview.View, error)
	Pending(ctx context.Context) ([]orderview.View, error)
	Accepted(ctx context.Context, deliveryID string) ([]orderview.View, error)
	Cancel(ctx context.Context, orderID string) (*orderview.View, error)
	Accept(ctx context.Context, orderID, deliveryID string) (*orderview.View, error)
}

// SessionService holds the locally stored identity.
type SessionService interface {
	Set(ctx context.Context, id session.Identity, token string) error
	Identity(ctx context.Context) (*session.Identity, error)
	Clear(ctx context.Context) error
}

// Deps carries the services the router exposes.
type Deps struct {
	Cart     CartStore
	Checkout CheckoutService
	Catalog  CatalogService
	Ratings  RatingLedger
	Orders   OrderViews
	Session  SessionService
}

// buildRouter wires routes for the gateway.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, uiOrigin string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(uiOrigin))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/session", setSessionHandler(deps.Session))
	router.GET("/session", getSessionHandler(deps.Session))
	router.DELETE("/session", clearSessionHandler(deps.Session))

	router.GET("/foods", listFoodsHandler(deps.Catalog))
	router.GET("/hotels/:hotelId/foods", hotelFoodsHandler(deps.Catalog))
	router.POST("/foods/:foodId/rating", submitRatingHandler(deps.Ratings, deps.Session))
	router.GET("/ratings", listRatingsHandler(deps.Ratings, deps.Session))

	router.GET("/cart", getCartHandler(deps.Cart, deps.Catalog))
	router.POST("/cart/items", addCartItemHandler(deps.Cart))
	router.PUT("/cart/items/:name", setCartQuantityHandler(deps.Cart))
	router.DELETE("/cart/items/:name", removeCartItemHandler(deps.Cart))
	router.DELETE("/cart", clearCartHandler(deps.Cart))

	router.POST("/checkout", checkoutHandler(deps.Checkout, deps.Session))
	router.POST("/checkout/payment", checkoutWithPaymentHandler(deps.Checkout, deps.Session))

	router.GET("/orders", myOrdersHandler(deps.Orders, deps.Session))
	router.GET("/orders/pending", pendingOrdersHandler(deps.Orders))
	router.GET("/orders/accepted", acceptedOrdersHandler(deps.Orders, deps.Session))
	router.PUT("/orders/:orderId/cancel", cancelOrderHandler(deps.Orders))
	router.PUT("/orders/:orderId/accept", acceptOrderHandler(deps.Orders, deps.Session))

	return router, nil
}

func corsMiddleware(uiOrigin string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if uiOrigin == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{uiOrigin}
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	cfg.AllowHeaders = []string{"Authorization", "Content-Type"}
	return cors.New(cfg)
}

// requireIdentity resolves the stored session identity or answers 401.
func requireIdentity(c *gin.Context, sessions SessionService) (*session.Identity, bool) {
	id, err := sessions.Identity(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "session lookup failed"})
		return nil, false
	}
	return id, true
}
