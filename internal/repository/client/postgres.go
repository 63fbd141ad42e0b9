package client

import (
	"context"
	"errors"
	"strings"

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

const clientColumns = `id::text, email, password_hash, company_name, contact_name, phone, vat_number, address, discount_percentage::text, zone_id::text, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.ClientAccount) (*domain.ClientAccount, error) {
	const q = `
INSERT INTO clients (email, password_hash, company_name, contact_name, phone, vat_number, address, discount_percentage, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9)
RETURNING ` + clientColumns
	row := r.pool.QueryRow(ctx, q,
		strings.ToLower(strings.TrimSpace(c.Email)),
		c.PasswordHash,
		c.CompanyName,
		c.ContactName,
		c.Phone,
		c.VATNumber,
		c.Address,
		c.DiscountPercentage.String(),
		c.Status,
	)
	return scanClient(row)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.ClientAccount, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`
	return scanClient(r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(email))))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.ClientAccount, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]domain.ClientAccount, error) {
	q := `SELECT ` + clientColumns + ` FROM clients`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClientAccount
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clients SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetTerms(ctx context.Context, id string, zoneID *string, discount decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET zone_id = $1, discount_percentage = $2::numeric WHERE id = $3`,
		zoneID, discount.String(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*domain.ClientAccount, error) {
	c, err := scanClientRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func scanClientRow(row pgx.Row) (*domain.ClientAccount, error) {
	var c domain.ClientAccount
	var discount string
	if err := row.Scan(
		&c.ID,
		&c.Email,
		&c.PasswordHash,
		&c.CompanyName,
		&c.ContactName,
		&c.Phone,
		&c.VATNumber,
		&c.Address,
		&discount,
		&c.ZoneID,
		&c.Status,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(discount)
	if err != nil {
		return nil, err
	}
	c.DiscountPercentage = d
	return &c, nil
}
