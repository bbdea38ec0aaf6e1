package domain

import "context"

// Product-related domain errors.
var (
	ErrUnknownProduct  = &Error{Code: ENOTFOUND, Message: "Product not found in catalog"}
	ErrInvalidProduct  = &Error{Code: EINVALID, Message: "Product has an invalid base price"}
	ErrInactiveProduct = &Error{Code: EINVALID, Message: "Product is not available for sale"}
)

// Product is a read-only catalog record. The catalog owns it; this engine
// treats it as immutable within a single operation.
type Product struct {
	ID             string
	Name           string
	Category       string
	BasePriceCents int64
	IsActive       bool
	ImageURL       string
	Features       []string
}

// InventoryRecord holds the current stock level for a product. Stock is
// mutated externally between operations; callers re-read before validating.
type InventoryRecord struct {
	ProductID      string
	QuantityOnHand int
}

// CatalogReader is the narrow read interface onto the catalog repository.
// An unknown product ID yields (nil, nil) - absence, not an error.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

// InventoryReader is the narrow read interface onto the inventory repository.
// An unknown product ID yields (nil, nil) - absence, not an error.
type InventoryReader interface {
	GetInventory(ctx context.Context, productID string) (*InventoryRecord, error)
}

// PricedLine is the role-specific pricing of one product, derived per call
// and never stored.
//
// Invariants:
//
//	SellPriceCents   = round(BasePriceCents * (1 + markup(role)))
//	MarginPerUnit    = SellPriceCents - BasePriceCents
//	CommissionPercent = round(MarginPerUnit / SellPriceCents * 100)
type PricedLine struct {
	ProductID         string `json:"product_id"`
	Role              Role   `json:"role"`
	BasePriceCents    int64  `json:"base_price_cents"`
	SellPriceCents    int64  `json:"sell_price_cents"`
	MarginPerUnit     int64  `json:"margin_per_unit_cents"`
	CommissionPercent int64  `json:"commission_percent"`
}
