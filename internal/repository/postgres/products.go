package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/domain"
)

type productRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB, logger *zap.Logger) *productRepository {
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) GetAvailableByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, title, description, price, images, stock_count, in_stock, active,
		       supplier_id, commission_percent, created_at, updated_at
		FROM products
		WHERE id = ANY($1::uuid[]) AND active = true AND in_stock = true
	`

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrings))
	if err != nil {
		r.logger.Error("Failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		var images pq.StringArray

		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&images,
			&product.StockCount,
			&product.InStock,
			&product.Active,
			&product.SupplierID,
			&product.CommissionPercent,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan product row", zap.Error(err))
			return nil, err
		}

		product.Images = []string(images)
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Product rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, images, stock_count, in_stock,
		                      active, supplier_id, commission_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		pq.Array(product.Images),
		product.StockCount,
		product.InStock,
		product.Active,
		product.SupplierID,
		product.CommissionPercent,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err))
		return err
	}

	return nil
}
