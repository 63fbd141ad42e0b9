package events

import "time"

// OrderCreatedEvent is published after an order and its lines are stored.
type OrderCreatedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	ClientID   string    `json:"client_id"`
	Total      string    `json:"total"`
	LineCount  int       `json:"line_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderCompensatedEvent is published when line-item persistence failed and
// the order header was rolled back.
type OrderCompensatedEvent struct {
	EventID    string    `json:"event_id"`
	OrderID    string    `json:"order_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
