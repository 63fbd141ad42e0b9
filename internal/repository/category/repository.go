package category

import (
	"context"

	"frituurgros/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
