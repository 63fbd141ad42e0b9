package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Pricing lives on variants; a product without
// variants cannot be ordered.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant is a sellable packaging option of a product (a weight or unit
// count) with its own list price.
type Variant struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Weight    string          `json:"weight,omitempty"`
	BasePrice decimal.Decimal `json:"basePrice"`
	CreatedAt time.Time       `json:"createdAt"`
}
