package domain

import "github.com/shopspring/decimal"

// CartLine is one product variant selected for purchase. UnitPrice already
// carries the client discount applied when the line was added; UnitPriceBase
// keeps the list price for display.
type CartLine struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	VariantID     string          `json:"variantId"`
	VariantName   string          `json:"variantName"`
	VariantWeight string          `json:"variantWeight,omitempty"`
	UnitPriceBase decimal.Decimal `json:"unitPriceBase"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
}

// Key identifies a line within a cart. Adding the same key twice merges
// quantities instead of duplicating the line.
func (l CartLine) Key() string {
	return l.ProductID + "/" + l.VariantID
}
