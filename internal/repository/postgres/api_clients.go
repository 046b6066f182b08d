package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/pkg/errors"
)

type apiClientRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAPIClientRepository creates a new API client repository
func NewAPIClientRepository(db *sql.DB, logger *zap.Logger) *apiClientRepository {
	return &apiClientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *apiClientRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.APIClient, error) {
	// Since bcrypt hashes are salted and different each time, we can't do a direct lookup.
	// We need to iterate through active clients and verify the API key against each hash.
	// For production, consider adding a lookup_hash column (SHA256) for efficient lookup.

	query := `
		SELECT id, name, email, api_key_hash, role, is_active, created_at, updated_at
		FROM api_clients
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query API clients", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var client domain.APIClient

		err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Email,
			&client.APIKeyHash,
			&client.Role,
			&client.IsActive,
			&client.CreatedAt,
			&client.UpdatedAt,
		)
		if err != nil {
			continue
		}

		// Verify API key against stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(client.APIKeyHash), []byte(apiKey)); err == nil {
			return &client, nil
		}
	}

	// An iteration failure is an infrastructure fault, not a bad credential
	if err := rows.Err(); err != nil {
		r.logger.Error("API client rows iteration failed", zap.Error(err))
		return nil, err
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *apiClientRepository) Create(ctx context.Context, client *domain.APIClient) error {
	query := `
		INSERT INTO api_clients (id, name, email, api_key_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.APIKeyHash,
		client.Role,
		client.IsActive,
		client.CreatedAt,
		client.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create API client", zap.Error(err))
		return err
	}

	return nil
}
