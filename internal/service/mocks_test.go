package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/internal/payment"
)

// MockProductRepository implements repository.ProductRepository for testing.
// It filters its fixture set the way the real query does: by id, active, and
// in_stock.
type MockProductRepository struct {
	Products []*domain.Product
	Err      error

	Calls   int
	LastIDs []uuid.UUID
}

func (m *MockProductRepository) GetAvailableByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	m.Calls++
	m.LastIDs = ids

	if m.Err != nil {
		return nil, m.Err
	}

	requested := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		requested[id] = struct{}{}
	}

	var out []*domain.Product
	for _, p := range m.Products {
		if _, ok := requested[p.ID]; !ok {
			continue
		}
		if !p.Active || !p.InStock {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *MockProductRepository) Create(_ context.Context, _ *domain.Product) error {
	return nil
}

// MockGateway implements payment.Gateway for testing. Each call mints a new
// session id, mirroring a provider that never reuses ids.
type MockGateway struct {
	Err error

	Calls        int
	LastRequest  *payment.SessionRequest
	LastIdemKeys []string
}

func (m *MockGateway) CreateSession(_ context.Context, req *payment.SessionRequest, idempotencyKey string) (*payment.Session, error) {
	m.Calls++
	m.LastRequest = req
	m.LastIdemKeys = append(m.LastIdemKeys, idempotencyKey)

	if m.Err != nil {
		return nil, m.Err
	}

	return &payment.Session{
		ID:  fmt.Sprintf("cs_test_%d", m.Calls),
		URL: fmt.Sprintf("https://pay.example.com/session/%d", m.Calls),
	}, nil
}
