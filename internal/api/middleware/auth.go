package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/internal/repository"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

const clientContextKey = "api_client"

// AuthMiddleware authenticates requests via Bearer API key
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "missing Authorization header"})
			return
		}

		apiKey := strings.TrimPrefix(authHeader, "Bearer ")
		if apiKey == authHeader || apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "malformed Authorization header"})
			return
		}

		client, err := repos.APIClient.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			if _, ok := err.(*errors.ErrUnauthorized); ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "invalid API key"})
				return
			}
			logger.Error("Failed to authenticate API key", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
			return
		}

		c.Set(clientContextKey, client)
		c.Next()
	}
}

// RequireCheckoutRole rejects authenticated callers whose role may not
// create checkout sessions
func RequireCheckoutRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := GetClientFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "unauthorized"})
			return
		}
		if !client.Role.CanCheckout() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "message": "role not permitted to checkout"})
			return
		}
		c.Next()
	}
}

// GetClientFromContext retrieves the authenticated API client from the
// request context
func GetClientFromContext(c *gin.Context) (*domain.APIClient, bool) {
	value, exists := c.Get(clientContextKey)
	if !exists {
		return nil, false
	}
	client, ok := value.(*domain.APIClient)
	return client, ok
}
