package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/shopglow/checkoutapi/internal/api"
	"github.com/shopglow/checkoutapi/internal/config"
	"github.com/shopglow/checkoutapi/internal/payment"
	"github.com/shopglow/checkoutapi/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := postgres.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Create repositories and collaborators
	repos := postgres.NewRepositories(db, logger)
	gateway := payment.NewClient(cfg.Payment, logger)

	// Start server
	router := api.NewRouter(cfg, repos, gateway, logger)
	logger.Info("Starting checkout API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
