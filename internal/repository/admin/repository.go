package admin

import (
	"context"

	"frituurgros/internal/domain"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Create(ctx context.Context, a domain.Admin) (*domain.Admin, error)
}
