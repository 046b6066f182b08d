package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/domain"
	"github.com/shopglow/checkoutapi/internal/repository/postgres"
)

// Demo catalog for local development. Every run inserts fresh rows with new
// ids, so it can be re-run safely.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	supplierID := uuid.New()
	products := []*domain.Product{
		{
			Title:             "Ceramic Pour-Over Set",
			Description:       "Hand-glazed ceramic dripper with matching carafe",
			Price:             49.99,
			Images:            []string{"https://cdn.example.com/pourover-1.jpg", "https://cdn.example.com/pourover-2.jpg"},
			StockCount:        24,
			InStock:           true,
			Active:            true,
			SupplierID:        supplierID,
			CommissionPercent: 12.5,
		},
		{
			Title:             "Linen Throw Blanket",
			Description:       "Stonewashed linen, 130x170cm",
			Price:             89.00,
			Images:            []string{"https://cdn.example.com/throw-1.jpg"},
			StockCount:        10,
			InStock:           true,
			Active:            true,
			SupplierID:        supplierID,
			CommissionPercent: 15,
		},
		{
			Title:             "Soy Candle Trio",
			Description:       "Cedar, fig, and sea salt",
			Price:             19.99,
			StockCount:        100,
			InStock:           true,
			Active:            true,
			SupplierID:        supplierID,
			CommissionPercent: 20,
		},
	}

	ctx := context.Background()
	for _, product := range products {
		if err := repos.Product.Create(ctx, product); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create product %q: %v\n", product.Title, err)
			os.Exit(1)
		}
		fmt.Printf("Created product %s (%s)\n", product.Title, product.ID)
	}

	fmt.Printf("\n✅ Seeded %d products for supplier %s\n", len(products), supplierID)
}
