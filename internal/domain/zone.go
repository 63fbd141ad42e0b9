package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone groups clients by delivery area and carries the weekday and
// shipping-fee policy for that area.
//
// A FreeShippingThreshold of zero means the flat fee always applies; the
// waiver only engages for a strictly positive threshold.
type DeliveryZone struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Weekdays              []time.Weekday  `json:"weekdays"`
	TimeWindow            string          `json:"timeWindow,omitempty"`
	FlatShippingFee       decimal.Decimal `json:"flatShippingFee"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
	CreatedAt             time.Time       `json:"createdAt"`
}
