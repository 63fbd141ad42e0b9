package client

import (
	"context"

	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.ClientAccount) (*domain.ClientAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error)
	GetByID(ctx context.Context, id string) (*domain.ClientAccount, error)
	// List returns accounts, optionally filtered by status ("" means all).
	List(ctx context.Context, status string) ([]domain.ClientAccount, error)
	SetStatus(ctx context.Context, id, status string) error
	// SetTerms assigns the delivery zone and discount granted at approval.
	SetTerms(ctx context.Context, id string, zoneID *string, discount decimal.Decimal) error
}
