package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ingatlan/agent/config"
	"ingatlan/agent/internal/models"
)

// ListCities returns the cities with a location premium
func (h *Handler) ListCities(c *gin.Context) {
	c.JSON(http.StatusOK, config.SupportedCities)
}

// GetMostExpensiveInCity returns the priciest listing in :city
func (h *Handler) GetMostExpensiveInCity(c *gin.Context) {
	city := c.Param("city")
	listing := h.registry.MostExpensiveIn(city)
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No listing in city"})
		return
	}
	c.JSON(http.StatusOK, models.NewListingView(listing))
}
