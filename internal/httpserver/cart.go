package httpserver

import (
	"net/http"

	cartsvc "gursha-client/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"priceCents"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler(cart CartStore, catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := cart.Snapshot(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to read cart"})
			return
		}
		display := cartsvc.Project(lines, catalog.Snapshot())
		c.JSON(http.StatusOK, gin.H{
			"lines":      display,
			"totalCents": cartsvc.Total(lines),
		})
	}
}

func addCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
			return
		}
		if err := cart.AddOrIncrement(c.Request.Context(), req.Name, req.PriceCents); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setCartQuantityHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity required"})
			return
		}
		if err := cart.SetQuantity(c.Request.Context(), c.Param("name"), req.Quantity); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Remove(c.Request.Context(), c.Param("name")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func clearCartHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cart.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
