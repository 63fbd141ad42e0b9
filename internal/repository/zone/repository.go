package zone

import (
	"context"

	"frituurgros/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error)
	Update(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error)
	GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error)
	List(ctx context.Context) ([]domain.DeliveryZone, error)
}
