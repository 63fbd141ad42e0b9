package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart is returned when an order is built from a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoDeliveryDate is returned when an order draft carries no requested delivery date.
	ErrNoDeliveryDate = errors.New("delivery date required")
	// ErrDateUnavailable indicates the requested delivery date is not offered for the zone.
	ErrDateUnavailable = errors.New("delivery date unavailable")
	// ErrInvalidQuantity indicates a cart mutation with a quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidStatus indicates a status transition the lifecycle does not allow.
	ErrInvalidStatus = errors.New("invalid status transition")
)
