package httpserver

import (
	"errors"
	"net/http"

	ratingsvc "gursha-client/internal/service/rating"
	"github.com/gin-gonic/gin"
)

type submitRatingRequest struct {
	Rating float64 `json:"rating"`
}

func listRatingsHandler(ratings RatingLedger, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		// Load never fails the page; a backend error just means an empty
		// ledger.
		c.JSON(http.StatusOK, ratings.Load(c.Request.Context(), identity.UserID))
	}
}

func submitRatingHandler(ratings RatingLedger, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := requireIdentity(c, sessions)
		if !ok {
			return
		}
		var req submitRatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "rating required"})
			return
		}
		average, err := ratings.Submit(c.Request.Context(), c.Param("foodId"), identity.UserID, req.Rating)
		if err != nil {
			if errors.Is(err, ratingsvc.ErrInvalidValue) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to submit rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rating": average})
	}
}
