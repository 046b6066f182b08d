package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/api/handlers"
	"github.com/shopglow/checkoutapi/internal/api/middleware"
	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/payment"
	"github.com/shopglow/checkoutapi/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, gateway payment.Gateway, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		checkoutRoutes := v1.Group("")
		checkoutRoutes.Use(middleware.AuthMiddleware(repos, logger))
		checkoutRoutes.Use(middleware.RequireCheckoutRole())
		{
			checkoutRoutes.POST("/checkout", handlers.HandleCheckout(cfg, repos, gateway, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
