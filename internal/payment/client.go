package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

// Gateway creates hosted payment sessions. Session creation is not
// idempotent on its own; callers pass an idempotency key so provider-side
// deduplication can kick in on retries.
type Gateway interface {
	CreateSession(ctx context.Context, req *SessionRequest, idempotencyKey string) (*Session, error)
}

// LineItem is one chargeable line in a session request. Images carries at
// most one URL; providers cap image count per line item.
type LineItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	UnitAmount  int64    `json:"unit_amount"`
	Quantity    int      `json:"quantity"`
}

// SessionRequest is the session-creation payload
type SessionRequest struct {
	LineItems         []LineItem        `json:"line_items"`
	Mode              string            `json:"mode"`
	SuccessURL        string            `json:"success_url"`
	CancelURL         string            `json:"cancel_url"`
	CustomerEmail     string            `json:"customer_email,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	ShippingCountries []string          `json:"shipping_countries,omitempty"`
}

// Session is the provider's response: an id plus the redirect URL the
// customer completes payment at
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new payment provider client
func NewClient(cfg config.PaymentConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:   baseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateSession creates a hosted checkout session with the payment provider
func (c *Client) CreateSession(ctx context.Context, sessionReq *SessionRequest, idempotencyKey string) (*Session, error) {
	url := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)

	jsonData, err := json.Marshal(sessionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.ErrPaymentGateway{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.ErrPaymentGateway{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		message := string(body)
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		c.logger.Error("Payment session creation failed",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, &errors.ErrPaymentGateway{StatusCode: resp.StatusCode, Message: message}
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, &errors.ErrPaymentGateway{Message: fmt.Sprintf("failed to unmarshal session: %v", err)}
	}

	if session.ID == "" || session.URL == "" {
		return nil, &errors.ErrPaymentGateway{Message: "provider returned an incomplete session"}
	}

	return &session, nil
}
