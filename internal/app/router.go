package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rides/internal/handler"
	"rides/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler *handler.RideHandler
	RedisClient *redis.Client
	NewRelicApp *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes. All ride routes require a resolved identity.
	v1 := router.Group("/v1")
	v1.Use(middleware.IdentityMiddleware())
	{
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.CreateRide)
			rides.GET("", deps.RideHandler.GetAllRides)
			rides.GET("/available", deps.RideHandler.GetAvailableRides)
			rides.GET("/mine", deps.RideHandler.GetMyRides)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.PUT("/:id/accept", deps.RideHandler.AcceptRide)
			rides.PUT("/:id/status", deps.RideHandler.UpdateStatus)
			rides.DELETE("/:id", deps.RideHandler.DeleteRide)
		}
	}

	return router
}
