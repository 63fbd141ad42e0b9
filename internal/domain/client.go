package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client account statuses.
const (
	ClientPending   = "pending"
	ClientActive    = "active"
	ClientSuspended = "suspended"
	ClientRefused   = "refused"
)

// ClientAccount is a professional buyer. Accounts start pending and must be
// approved by an admin before they can order.
type ClientAccount struct {
	ID                 string          `json:"id"`
	Email              string          `json:"email"`
	PasswordHash       string          `json:"-"`
	CompanyName        string          `json:"companyName"`
	ContactName        string          `json:"contactName,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	VATNumber          string          `json:"vatNumber,omitempty"`
	Address            string          `json:"address,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	ZoneID             *string         `json:"zoneId,omitempty"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
}
