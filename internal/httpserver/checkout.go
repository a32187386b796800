package httpserver

import (
	"errors"
	"net/http"

	checkoutsvc "gursha-client/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func checkoutHandler(svc CheckoutService, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		result, err := svc.Checkout(c.Request.Context(), *identity)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
			return
		}
		if !result.Succeeded() {
			c.JSON(http.StatusConflict, result)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

func checkoutWithPaymentHandler(svc CheckoutService, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		result, err := svc.CheckoutWithPayment(c.Request.Context(), *identity)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
			return
		}
		if !result.Succeeded() {
			c.JSON(http.StatusConflict, result)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
