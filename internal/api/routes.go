package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler, allowedOrigins []string) {
	router.Use(cors.New(corsConfig(allowedOrigins)))

	api := router.Group("/api")
	{
		api.GET("/listings", handler.GetAllListings)
		api.GET("/listings/:id", handler.GetListing)
		api.GET("/listings/:id/same-valuation", handler.GetSameValuation)
		api.GET("/stats", handler.GetStats)
		api.GET("/cities", handler.ListCities)
		api.GET("/cities/:city/most-expensive", handler.GetMostExpensiveInCity)
		api.GET("/condominiums/below-average", handler.GetCondominiumsBelowAverage)
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
