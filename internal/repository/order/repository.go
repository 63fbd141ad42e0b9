package order

import (
	"context"

	"frituurgros/internal/domain"
)

// Repository persists orders as a header row plus line rows. Header and
// lines are created in separate calls so the checkout can compensate a
// half-written order by deleting the header.
type Repository interface {
	CreateHeader(ctx context.Context, o domain.Order) (*domain.Order, error)
	CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error
	DeleteHeader(ctx context.Context, orderID string) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Order, error)
	// List returns all orders, optionally filtered by status ("" means all).
	List(ctx context.Context, status string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
}
