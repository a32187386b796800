package httpserver

import (
	"errors"
	"net/http"

	"gursha-client/internal/domain"
	"github.com/gin-gonic/gin"
)

func myOrdersHandler(orders OrderViews, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		views, err := orders.Mine(c.Request.Context(), identity.UserID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func pendingOrdersHandler(orders OrderViews) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := orders.Pending(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to load pending orders"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func acceptedOrdersHandler(orders OrderViews, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		views, err := orders.Accepted(c.Request.Context(), identity.UserID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to load accepted orders"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func cancelOrderHandler(orders OrderViews) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := orders.Cancel(c.Request.Context(), c.Param("orderId"))
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// The order already left pending; return the authoritative
				// record so the UI refreshes instead of assuming success.
				c.JSON(http.StatusConflict, gin.H{"message": "order already handled", "order": view})
				return
			}
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to cancel order"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func acceptOrderHandler(orders OrderViews, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		view, err := orders.Accept(c.Request.Context(), c.Param("orderId"), identity.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"message": "order already taken", "order": view})
				return
			}
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to accept order"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
