package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/parapharma/storefront/internal/cart"
)

// Shipping is free from 300 DH; below that a flat 30 DH applies.
var (
	FreeShippingThreshold = decimal.NewFromInt(300)
	ShippingFee           = decimal.NewFromInt(30)
)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the order totals from the cart lines, using each
// line's add-time price snapshot.
func ComputeTotals(lines []cart.Item) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal())
	}
	shipping := ShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
