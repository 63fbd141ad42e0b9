package product

import (
	"context"

	"frituurgros/internal/domain"
)

type Repository interface {
	// Create inserts the product and its variants.
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns products with variants, optionally filtered by category.
	List(ctx context.Context, categoryID string, activeOnly bool) ([]domain.Product, error)
}
