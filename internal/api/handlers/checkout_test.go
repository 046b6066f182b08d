package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/api"
	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/internal/payment"
	"github.com/shopglow/checkoutapi/internal/repository"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

const testAPIKey = "test-api-key"

type stubProductRepo struct {
	products []*domain.Product
}

func (s *stubProductRepo) GetAvailableByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	requested := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}
	var out []*domain.Product
	for _, p := range s.products {
		if _, ok := requested[p.ID]; ok && p.Active && p.InStock {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) Create(_ context.Context, _ *domain.Product) error { return nil }

type stubAPIClientRepo struct {
	client *domain.APIClient
}

func (s *stubAPIClientRepo) GetByAPIKey(_ context.Context, apiKey string) (*domain.APIClient, error) {
	if s.client != nil && apiKey == testAPIKey {
		return s.client, nil
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (s *stubAPIClientRepo) Create(_ context.Context, _ *domain.APIClient) error { return nil }

type stubGateway struct {
	err   error
	calls int
}

func (s *stubGateway) CreateSession(_ context.Context, _ *payment.SessionRequest, _ string) (*payment.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &payment.Session{
		ID:  fmt.Sprintf("cs_test_%d", s.calls),
		URL: "https://pay.example.com/cs_test",
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Checkout: config.CheckoutConfig{
			SuccessURL:        "https://shop.example.com/success",
			CancelURL:         "https://shop.example.com/cancel",
			ShippingCountries: []string{"US"},
		},
	}
}

func newTestRouter(products []*domain.Product, role domain.Role, gateway *stubGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repos := &repository.Repositories{
		Product: &stubProductRepo{products: products},
		APIClient: &stubAPIClientRepo{client: &domain.APIClient{
			ID:       uuid.New(),
			Name:     "Test Client",
			Role:     role,
			IsActive: true,
		}},
	}

	return api.NewRouter(testConfig(), repos, gateway, zap.NewNop())
}

func availableProduct(price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:         uuid.New(),
		Title:      "Linen Throw Blanket",
		Price:      price,
		Images:     []string{"https://cdn.example.com/throw-1.jpg"},
		StockCount: stock,
		InStock:    true,
		Active:     true,
		SupplierID: uuid.New(),
	}
}

func doCheckout(router *gin.Engine, apiKey string, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func checkoutBody(items ...map[string]any) map[string]any {
	address := map[string]any{
		"street":      "12 Main St",
		"city":        "Portland",
		"postal_code": "97201",
		"country":     "US",
	}
	return map[string]any{
		"items":            items,
		"shipping_address": address,
		"billing_address":  address,
	}
}

func TestHandleCheckout_Success(t *testing.T) {
	product := availableProduct(19.99, 10)
	router := newTestRouter([]*domain.Product{product}, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": product.ID.String(), "quantity": 2},
	))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			SessionID string `json:"session_id"`
			URL       string `json:"url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.Data.SessionID)
	assert.NotEmpty(t, resp.Data.URL)
}

func TestHandleCheckout_MissingAuth(t *testing.T) {
	router := newTestRouter(nil, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, "", checkoutBody(
		map[string]any{"product_id": uuid.NewString(), "quantity": 1},
	))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleCheckout_InvalidAPIKey(t *testing.T) {
	router := newTestRouter(nil, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, "wrong-key", checkoutBody(
		map[string]any{"product_id": uuid.NewString(), "quantity": 1},
	))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleCheckout_SupplierRoleForbidden(t *testing.T) {
	product := availableProduct(19.99, 10)
	gateway := &stubGateway{}
	router := newTestRouter([]*domain.Product{product}, domain.RoleSupplier, gateway)

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": product.ID.String(), "quantity": 1},
	))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, gateway.calls)
}

func TestHandleCheckout_EmptyCart(t *testing.T) {
	gateway := &stubGateway{}
	router := newTestRouter(nil, domain.RoleCustomer, gateway)

	w := doCheckout(router, testAPIKey, checkoutBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gateway.calls)
}

func TestHandleCheckout_MissingAddress(t *testing.T) {
	router := newTestRouter(nil, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, testAPIKey, map[string]any{
		"items": []map[string]any{{"product_id": uuid.NewString(), "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCheckout_UnavailableProduct(t *testing.T) {
	router := newTestRouter(nil, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": uuid.NewString(), "quantity": 1},
	))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "some products in your cart are no longer available", resp.Message)
}

func TestHandleCheckout_InsufficientStock(t *testing.T) {
	product := availableProduct(19.99, 2)
	router := newTestRouter([]*domain.Product{product}, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": product.ID.String(), "quantity": 5},
	))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), product.Title)
}

func TestHandleCheckout_InvalidPriceIsGeneric(t *testing.T) {
	product := availableProduct(0, 10)
	router := newTestRouter([]*domain.Product{product}, domain.RoleCustomer, &stubGateway{})

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": product.ID.String(), "quantity": 1},
	))

	require.Equal(t, http.StatusBadRequest, w.Code)
	// data-quality faults must not leak catalog internals
	assert.NotContains(t, w.Body.String(), product.ID.String())
}

func TestHandleCheckout_GatewayError(t *testing.T) {
	product := availableProduct(19.99, 10)
	gateway := &stubGateway{err: &errors.ErrPaymentGateway{StatusCode: 503, Message: "unavailable"}}
	router := newTestRouter([]*domain.Product{product}, domain.RoleCustomer, gateway)

	w := doCheckout(router, testAPIKey, checkoutBody(
		map[string]any{"product_id": product.ID.String(), "quantity": 1},
	))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// exactly one attempt, never retried
	assert.Equal(t, 1, gateway.calls)
}
