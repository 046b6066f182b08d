package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/shopglow/checkoutapi/internal/domain"
)

// ProductRepository reads catalog snapshots. It never reserves or locks
// matched rows; callers get a point-in-time view.
type ProductRepository interface {
	// GetAvailableByIDs fetches products by id set, constrained to
	// active = true AND in_stock = true. Missing, inactive, or
	// out-of-stock ids are simply absent from the result.
	GetAvailableByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}

// APIClientRepository manages authenticated callers
type APIClientRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.APIClient, error)
	Create(ctx context.Context, client *domain.APIClient) error
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Product   ProductRepository
	APIClient APIClientRepository
}
