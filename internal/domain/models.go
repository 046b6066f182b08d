package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the authoritative catalog record. The pricing engine only reads
// a snapshot at checkout time; ownership stays with the Product Repository.
//
// Price is carried as float64 because the store's NUMERIC column can surface
// NaN from upstream imports; the engine validates finiteness before any
// arithmetic and works in decimals from there on.
type Product struct {
	ID                uuid.UUID
	Title             string
	Description       string
	Price             float64
	Images            []string
	StockCount        int
	InStock           bool
	Active            bool
	SupplierID        uuid.UUID
	CommissionPercent float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OrderLine is a validated cart line priced from the repository snapshot.
// Created fresh per checkout attempt and never persisted by the engine.
type OrderLine struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Title             string          `json:"title"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          int             `json:"quantity"`
	LineTotal         decimal.Decimal `json:"line_total"`
	ImagePrimary      string          `json:"image,omitempty"`
	SupplierID        uuid.UUID       `json:"supplier_id"`
	CommissionPercent float64         `json:"commission_percent"`
}

// APIClient represents an authenticated caller of the checkout API
type APIClient struct {
	ID         uuid.UUID
	Name       string
	Email      string
	APIKeyHash string
	Role       Role
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
