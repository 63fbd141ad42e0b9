package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPlaced    = "placed"
	OrderConfirmed = "confirmed"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order is a submitted purchase. Subtotal, ShippingFee and Total are frozen
// at submission time. DiscountPercentage is informational; the line unit
// prices already reflect it.
type Order struct {
	ID                    string          `json:"id"`
	ClientID              string          `json:"clientId"`
	Status                string          `json:"status"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	ShippingFee           decimal.Decimal `json:"shippingFee"`
	Total                 decimal.Decimal `json:"total"`
	DiscountPercentage    decimal.Decimal `json:"discountPercentage"`
	RequestedDeliveryDate time.Time       `json:"requestedDeliveryDate"`
	DeliveryInstructions  string          `json:"deliveryInstructions,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	Lines                 []OrderLine     `json:"lines,omitempty"`
}

// OrderLine is a frozen copy of one cart line at submission time.
type OrderLine struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	VariantID   string          `json:"variantId"`
	VariantName string          `json:"variantName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}
