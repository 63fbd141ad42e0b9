package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"frituurgros/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `
SELECT id::text, email, password_hash, name, active, created_at
FROM admins
WHERE email = $1
`
	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Active,
		&a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) Create(ctx context.Context, a domain.Admin) (*domain.Admin, error) {
	const q = `
INSERT INTO admins (email, password_hash, name, active)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, password_hash, name, active, created_at
`
	var out domain.Admin
	err := r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, a.Name, a.Active).Scan(
		&out.ID,
		&out.Email,
		&out.PasswordHash,
		&out.Name,
		&out.Active,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
