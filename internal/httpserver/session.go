package httpserver

import (
	"errors"
	"net/http"

	"gursha-client/internal/domain"
	"gursha-client/internal/service/session"
	"github.com/gin-gonic/gin"
)

type setSessionRequest struct {
	User  session.Identity `json:"user"`
	Token string           `json:"token" binding:"required"`
}

func setSessionHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "user and token required"})
			return
		}
		if err := sessions.Set(c.Request.Context(), req.User, req.Token); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getSessionHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := sessions.Identity(c.Request.Context())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "not signed in"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "session lookup failed"})
			return
		}
		c.JSON(http.StatusOK, identity)
	}
}

func clearSessionHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Clear(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to clear session"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
