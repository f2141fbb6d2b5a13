// Package pricing computes the money breakdown for a set of purchasable lines.
// All arithmetic is exact decimal; presentation rounding happens at render time.
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	// FlatShipping is charged on every non-empty quote.
	FlatShipping = decimal.RequireFromString("9.99")

	// TaxRate applies to the subtotal only, never to shipping.
	TaxRate = decimal.RequireFromString("0.21")
)

// Line is one priced position inside a quote.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote is the computed money breakdown for a set of lines.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Compute derives the full breakdown for the given lines.
//
// Shipping is a flat fee waived when the subtotal is zero, so an empty
// quote (or one of zero-priced lines) costs nothing end to end.
func Compute(lines []Line) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = FlatShipping
	}

	tax := subtotal.Mul(TaxRate)

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
