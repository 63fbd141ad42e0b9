// Package pricing derives per-unit discounted prices and order-level totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice applies a client discount percentage to a list price, rounded
// half-up to the currency minor unit. A zero discount returns the base price
// unchanged, with no rounding applied.
func UnitPrice(base decimal.Decimal, discountPercentage decimal.Decimal) decimal.Decimal {
	if discountPercentage.IsZero() {
		return base
	}
	factor := decimal.NewFromInt(1).Sub(discountPercentage.Div(hundred))
	return base.Mul(factor).Round(2)
}

// Totals is the evaluated order summary.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Total       decimal.Decimal `json:"total"`
}

// Evaluate sums the cart lines at their stored (already discounted) unit
// prices and applies the zone's shipping policy. No zone means no shipping
// fee. The free-shipping boundary is inclusive, and a zero threshold never
// waives the fee.
func Evaluate(lines []domain.CartLine, zone *domain.DeliveryZone) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	fee := decimal.Zero
	if zone != nil {
		fee = zone.FlatShippingFee
		if zone.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(zone.FreeShippingThreshold) {
			fee = decimal.Zero
		}
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}
