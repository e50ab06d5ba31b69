// Package catalog provides the product and category models, the PostgreSQL
// repository for catalogue reads, and the client-side filter/sort pipeline.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	// Prices are NUMERIC in Postgres; decimal avoids float rounding.
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.NullDecimal `json:"original_price"`
	ImageURL      string              `json:"image_url,omitempty"`
	Images        []string            `json:"images,omitempty"`
	CategoryID    string              `json:"category_id,omitempty"`
	Brand         string              `json:"brand,omitempty"`
	InStock       bool                `json:"in_stock"`
	StockQuantity int                 `json:"stock_quantity"`
	Featured      bool                `json:"featured"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// DiscountPercent returns the rounded percentage off the original price,
// or 0 when the product has no discount worth displaying.
func (p Product) DiscountPercent() int {
	if !p.OriginalPrice.Valid || p.OriginalPrice.Decimal.IsZero() {
		return 0
	}
	pct := p.OriginalPrice.Decimal.Sub(p.Price).
		Div(p.OriginalPrice.Decimal).
		Mul(decimal.NewFromInt(100)).
		Round(0).IntPart()
	if pct <= 0 {
		return 0
	}
	return int(pct)
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}
