package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Payment     PaymentConfig
	Checkout    CheckoutConfig
	API         APIConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PaymentConfig struct {
	BaseURL   string
	SecretKey string
}

type CheckoutConfig struct {
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
}

type APIConfig struct {
	KeyHashSalt string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PAYMENT_API_URL", "https://api.stripe.com")
	viper.SetDefault("SHIPPING_COUNTRIES", "US,CA,GB")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "checkoutapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Payment: PaymentConfig{
			BaseURL:   getEnvOrViper("PAYMENT_API_URL", "https://api.stripe.com"),
			SecretKey: getEnvOrViper("PAYMENT_SECRET_KEY", ""),
		},
		Checkout: CheckoutConfig{
			SuccessURL:        getEnvOrViper("CHECKOUT_SUCCESS_URL", ""),
			CancelURL:         getEnvOrViper("CHECKOUT_CANCEL_URL", ""),
			ShippingCountries: splitCSV(getEnvOrViper("SHIPPING_COUNTRIES", "US,CA,GB")),
		},
		API: APIConfig{
			KeyHashSalt: getEnvOrViper("API_KEY_HASH_SALT", "default-salt-change-in-production"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Payment.SecretKey == "" {
		return nil, fmt.Errorf("PAYMENT_SECRET_KEY is required")
	}
	if cfg.Checkout.SuccessURL == "" {
		return nil, fmt.Errorf("CHECKOUT_SUCCESS_URL is required")
	}
	if cfg.Checkout.CancelURL == "" {
		return nil, fmt.Errorf("CHECKOUT_CANCEL_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
