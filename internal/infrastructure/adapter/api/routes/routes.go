package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, countdownHandler *handler.CountdownHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	countdowns := router.Group("/countdowns")
	{
		countdowns.POST("", countdownHandler.CreateCountdown)
		countdowns.GET("", countdownHandler.ListCountdowns)
		countdowns.GET("/:id", countdownHandler.GetCountdown)
		countdowns.POST("/:id/start", countdownHandler.StartCountdown)
		countdowns.GET("/:id/events", countdownHandler.StreamEvents)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Recovery must wrap everything else
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
