package order

import (
	"context"
	"errors"

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

const orderColumns = `id::text, client_id::text, status, subtotal::text, shipping_fee::text, total::text, discount_percentage::text, requested_delivery_date, delivery_instructions, created_at`

func (r *postgresRepo) CreateHeader(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (client_id, status, subtotal, shipping_fee, total, discount_percentage, requested_delivery_date, delivery_instructions)
VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6::numeric, $7, $8)
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q,
		o.ClientID,
		o.Status,
		o.Subtotal.String(),
		o.ShippingFee.String(),
		o.Total.String(),
		o.DiscountPercentage.String(),
		o.RequestedDeliveryDate,
		o.DeliveryInstructions,
	)
	return scanOrder(row)
}

func (r *postgresRepo) CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO order_lines (order_id, product_id, product_name, variant_id, variant_name, quantity, unit_price, line_total)
VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric)
`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, q,
			orderID,
			line.ProductID,
			line.ProductName,
			line.VariantID,
			line.VariantName,
			line.Quantity,
			line.UnitPrice.String(),
			line.LineTotal.String(),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepo) DeleteHeader(ctx context.Context, orderID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	lines, err := r.linesFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return o, nil
}

func (r *postgresRepo) ListByClient(ctx context.Context, clientID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE client_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, clientID)
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]domain.Order, error) {
	if status == "" {
		return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *postgresRepo) linesFor(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id::text, order_id::text, product_id, product_name, variant_id, variant_name, quantity, unit_price::text, line_total::text
FROM order_lines
WHERE order_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		var unit, total string
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.VariantID, &l.VariantName, &l.Quantity, &unit, &total); err != nil {
			return nil, err
		}
		if l.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, err
		}
		if l.LineTotal, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	o, err := scanOrderRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return o, err
}

func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var subtotal, fee, total, discount string
	if err := row.Scan(
		&o.ID,
		&o.ClientID,
		&o.Status,
		&subtotal,
		&fee,
		&total,
		&discount,
		&o.RequestedDeliveryDate,
		&o.DeliveryInstructions,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if o.ShippingFee, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	if o.DiscountPercentage, err = decimal.NewFromString(discount); err != nil {
		return nil, err
	}
	return &o, nil
}
