package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/api/middleware"
	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/payment"
	"github.com/shopglow/checkoutapi/internal/repository"
	"github.com/shopglow/checkoutapi/internal/service"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

// CheckoutResponse represents a successful checkout response
type CheckoutResponse struct {
	OK   bool         `json:"ok"`
	Data CheckoutData `json:"data"`
}

type CheckoutData struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(cfg *config.Config, repos *repository.Repositories, gateway payment.Gateway, logger *zap.Logger) gin.HandlerFunc {
	checkoutService := service.NewCheckoutService(repos, gateway, cfg.Checkout, logger)

	return func(c *gin.Context) {
		client, ok := middleware.GetClientFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "unauthorized"})
			return
		}

		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"message": "validation failed",
				"errors":  err.Error(),
			})
			return
		}

		result, err := checkoutService.CreateSession(c.Request.Context(), client.ID, &req)
		if err != nil {
			respondCheckoutError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			OK: true,
			Data: CheckoutData{
				SessionID: result.SessionID,
				URL:       result.URL,
			},
		})
	}
}

// respondCheckoutError maps engine errors to the HTTP contract. Validation
// failures are 400 with user-actionable messages; gateway and unexpected
// failures are 500.
func respondCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrValidation:
		body := gin.H{"ok": false, "message": e.Message}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case *errors.ErrProductsUnavailable, *errors.ErrProductNotFound:
		// Generic on purpose: naming which products failed would let
		// callers probe inventory state
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "some products in your cart are no longer available"})
	case *errors.ErrInsufficientStock:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": e.Error()})
	case *errors.ErrInvalidPrice:
		// Catalog data-integrity fault; alert server-side, stay generic
		// to the user
		logger.Error("Invalid product price reached checkout",
			zap.String("product_id", e.ProductID),
			zap.Float64("price", e.Price),
		)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "checkout failed, please try again later"})
	case *errors.ErrPaymentGateway:
		logger.Error("Payment gateway error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "failed to create payment session"})
	default:
		logger.Error("Checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
	}
}
