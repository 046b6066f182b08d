package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/internal/payment"
	"github.com/shopglow/checkoutapi/internal/repository"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

// idempotencyBucket groups retries of the same cart into one provider-side
// session. Five minutes matches the storefront's double-click/network-retry
// window without pinning a stale session for a returning customer.
const idempotencyBucket = 5 * time.Minute

// CheckoutResult is the outcome of a successful checkout: the provider
// session plus the server-priced order snapshot it was built from.
type CheckoutResult struct {
	SessionID string
	URL       string
	Total     decimal.Decimal
	Lines     []domain.OrderLine
}

type checkoutService struct {
	repos   *repository.Repositories
	gateway payment.Gateway
	cfg     config.CheckoutConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repos *repository.Repositories, gateway payment.Gateway, cfg config.CheckoutConfig, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		repos:   repos,
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateSession converts an untrusted cart into a provider-ready payment
// session. Every line is re-priced from the repository snapshot; client
// prices are never consulted. Validation failures reject the whole cart —
// partial fulfillment never happens.
func (s *checkoutService) CreateSession(ctx context.Context, userID uuid.UUID, req *CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart is empty"}
	}

	lines, err := s.parseItems(req.Items)
	if err != nil {
		return nil, err
	}

	distinctIDs := distinctProductIDs(lines)

	products, err := s.repos.Product.GetAvailableByIDs(ctx, distinctIDs)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, err
	}

	// Strict equality: any id that is inactive, out of stock, or missing
	// fails the whole cart rather than silently dropping lines.
	if len(products) != len(distinctIDs) {
		return nil, &errors.ErrProductsUnavailable{
			Requested: len(distinctIDs),
			Found:     len(products),
		}
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		product, ok := byID[line.productID]
		if !ok {
			// Should not occur after the count check above
			return nil, &errors.ErrProductNotFound{ProductID: line.productID.String()}
		}

		if line.quantity > product.StockCount {
			return nil, &errors.ErrInsufficientStock{
				Title:     product.Title,
				Requested: line.quantity,
				Available: product.StockCount,
			}
		}

		if !domain.IsValidPrice(product.Price) {
			// Data-integrity fault in the catalog, not user error
			s.logger.Error("Product has invalid price, failing checkout",
				zap.String("product_id", product.ID.String()),
				zap.Float64("price", product.Price),
			)
			return nil, &errors.ErrInvalidPrice{ProductID: product.ID.String(), Price: product.Price}
		}

		unitPrice := decimal.NewFromFloat(product.Price)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.quantity)))
		total = total.Add(lineTotal)

		orderLine := domain.OrderLine{
			ProductID:         product.ID,
			Title:             product.Title,
			UnitPrice:         unitPrice,
			Quantity:          line.quantity,
			LineTotal:         lineTotal,
			SupplierID:        product.SupplierID,
			CommissionPercent: product.CommissionPercent,
		}
		if len(product.Images) > 0 {
			orderLine.ImagePrimary = product.Images[0]
		}

		orderLines = append(orderLines, orderLine)
	}

	sessionReq, err := s.buildSessionRequest(userID, req, orderLines, byID, total)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, sessionReq, s.idempotencyKey(userID, lines))
	if err != nil {
		// Session creation is not safely retryable; surface as-is
		return nil, err
	}

	return &CheckoutResult{
		SessionID: session.ID,
		URL:       session.URL,
		Total:     total,
		Lines:     orderLines,
	}, nil
}

type cartLine struct {
	productID uuid.UUID
	quantity  int
}

func (s *checkoutService) parseItems(items []CheckoutItem) ([]cartLine, error) {
	lines := make([]cartLine, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{
				Message: "invalid product id",
				Fields:  map[string]string{"product_id": item.ProductID},
			}
		}
		if item.Quantity <= 0 {
			return nil, &errors.ErrValidation{
				Message: "quantity must be a positive integer",
				Fields:  map[string]string{"product_id": item.ProductID},
			}
		}
		lines = append(lines, cartLine{productID: id, quantity: item.Quantity})
	}
	return lines, nil
}

func distinctProductIDs(lines []cartLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.productID]; ok {
			continue
		}
		seen[line.productID] = struct{}{}
		ids = append(ids, line.productID)
	}
	return ids
}

func (s *checkoutService) buildSessionRequest(userID uuid.UUID, req *CheckoutRequest, orderLines []domain.OrderLine, products map[uuid.UUID]*domain.Product, total decimal.Decimal) (*payment.SessionRequest, error) {
	lineItems := make([]payment.LineItem, len(orderLines))
	for i, line := range orderLines {
		item := payment.LineItem{
			Name:        line.Title,
			Description: products[line.ProductID].Description,
			// Minor-unit conversion happens only here, at the boundary
			UnitAmount: domain.MinorUnits(line.UnitPrice),
			Quantity:   line.Quantity,
		}
		if line.ImagePrimary != "" {
			// Providers cap images per line item; send the primary only
			item.Images = []string{line.ImagePrimary}
		}
		lineItems[i] = item
	}

	// The metadata snapshot is the only durable record of what the customer
	// saw at checkout; catalog prices may change after the session exists.
	snapshot, err := json.Marshal(orderLines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order snapshot: %w", err)
	}

	sessionReq := &payment.SessionRequest{
		LineItems:  lineItems,
		Mode:       "payment",
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Metadata: map[string]string{
			"user_id":    userID.String(),
			"cart_total": total.StringFixed(2),
			"order":      string(snapshot),
		},
		ShippingCountries: s.cfg.ShippingCountries,
	}
	if req.CustomerEmail != nil {
		sessionReq.CustomerEmail = *req.CustomerEmail
	}

	return sessionReq, nil
}

// idempotencyKey derives a deterministic key from the caller, the cart
// content, and a coarse time bucket, so provider-side deduplication absorbs
// double-clicks and transport retries of the same cart.
func (s *checkoutService) idempotencyKey(userID uuid.UUID, lines []cartLine) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = fmt.Sprintf("%s:%d", line.productID, line.quantity)
	}
	sort.Strings(parts)

	bucket := s.now().Unix() / int64(idempotencyBucket.Seconds())

	h := sha256.New()
	fmt.Fprintf(h, "%s|%v|%d", userID, parts, bucket)
	return hex.EncodeToString(h.Sum(nil))
}
