package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listFoodsHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to load foods"})
			return
		}
		c.JSON(http.StatusOK, catalog.Snapshot())
	}
}

func hotelFoodsHandler(catalog CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		foods, err := catalog.ByHotel(c.Request.Context(), c.Param("hotelId"))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "failed to load hotel foods"})
			return
		}
		c.JSON(http.StatusOK, foods)
	}
}
