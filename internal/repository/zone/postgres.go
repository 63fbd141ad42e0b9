package zone

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const zoneColumns = `id::text, name, weekdays, time_window, flat_shipping_fee::text, free_shipping_threshold::text, created_at`

func (r *postgresRepo) Create(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error) {
	const q = `
INSERT INTO zones (name, weekdays, time_window, flat_shipping_fee, free_shipping_threshold)
VALUES ($1, $2, $3, $4::numeric, $5::numeric)
RETURNING ` + zoneColumns
	row := r.pool.QueryRow(ctx, q,
		z.Name,
		weekdaysToInts(z.Weekdays),
		z.TimeWindow,
		z.FlatShippingFee.String(),
		z.FreeShippingThreshold.String(),
	)
	return scanZone(row)
}

func (r *postgresRepo) Update(ctx context.Context, z domain.DeliveryZone) (*domain.DeliveryZone, error) {
	const q = `
UPDATE zones
SET name = $1, weekdays = $2, time_window = $3, flat_shipping_fee = $4::numeric, free_shipping_threshold = $5::numeric
WHERE id = $6
RETURNING ` + zoneColumns
	row := r.pool.QueryRow(ctx, q,
		z.Name,
		weekdaysToInts(z.Weekdays),
		z.TimeWindow,
		z.FlatShippingFee.String(),
		z.FreeShippingThreshold.String(),
		z.ID,
	)
	return scanZone(row)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryZone, error) {
	const q = `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1`
	return scanZone(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	const q = `SELECT ` + zoneColumns + ` FROM zones ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DeliveryZone
	for rows.Next() {
		z, err := scanZoneRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *z)
	}
	return out, rows.Err()
}

func scanZone(row pgx.Row) (*domain.DeliveryZone, error) {
	z, err := scanZoneRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return z, err
}

func scanZoneRow(row pgx.Row) (*domain.DeliveryZone, error) {
	var z domain.DeliveryZone
	var weekdays []int32
	var fee, threshold string
	if err := row.Scan(
		&z.ID,
		&z.Name,
		&weekdays,
		&z.TimeWindow,
		&fee,
		&threshold,
		&z.CreatedAt,
	); err != nil {
		return nil, err
	}
	z.Weekdays = intsToWeekdays(weekdays)
	var err error
	if z.FlatShippingFee, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	if z.FreeShippingThreshold, err = decimal.NewFromString(threshold); err != nil {
		return nil, err
	}
	return &z, nil
}

func weekdaysToInts(weekdays []time.Weekday) []int32 {
	out := make([]int32, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, int32(wd))
	}
	return out
}

func intsToWeekdays(ints []int32) []time.Weekday {
	out := make([]time.Weekday, 0, len(ints))
	for _, i := range ints {
		out = append(out, time.Weekday(i))
	}
	return out
}
