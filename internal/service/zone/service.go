// Package zone manages delivery zone reference data.
package zone

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
	zonerepo "frituurgros/internal/repository/zone"
	"frituurgros/internal/schedule"
)

type Service struct {
	repo zonerepo.Repository
}

func New(repo zonerepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input mirrors the admin zone form. Weekdays arrive as names and are
// validated against the seven-value vocabulary.
type Input struct {
	Name                  string          `json:"name"`
	Weekdays              []string        `json:"weekdays"`
	TimeWindow            string          `json:"timeWindow"`
	FlatShippingFee       decimal.Decimal `json:"flatShippingFee"`
	FreeShippingThreshold decimal.Decimal `json:"freeShippingThreshold"`
}

func (s *Service) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.DeliveryZone, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.DeliveryZone, error) {
	z, err := zoneFromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *z)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.DeliveryZone, error) {
	z, err := zoneFromInput(in)
	if err != nil {
		return nil, err
	}
	z.ID = id
	return s.repo.Update(ctx, *z)
}

func zoneFromInput(in Input) (*domain.DeliveryZone, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("name required")
	}
	weekdays, err := schedule.Normalize(in.Weekdays)
	if err != nil {
		return nil, err
	}
	if in.FlatShippingFee.IsNegative() {
		return nil, errors.New("shipping fee must not be negative")
	}
	if in.FreeShippingThreshold.IsNegative() {
		return nil, errors.New("free shipping threshold must not be negative")
	}
	return &domain.DeliveryZone{
		Name:                  strings.TrimSpace(in.Name),
		Weekdays:              weekdays,
		TimeWindow:            strings.TrimSpace(in.TimeWindow),
		FlatShippingFee:       in.FlatShippingFee,
		FreeShippingThreshold: in.FreeShippingThreshold,
	}, nil
}
