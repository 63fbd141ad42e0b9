package token

import (
	"context"
	"errors"

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

func (r *postgresRepo) Create(ctx context.Context, t Token) error {
	const q = `
INSERT INTO tokens (token, email, kind, expires_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.pool.Exec(ctx, q, t.Token, t.Email, t.Kind, t.ExpiresAt)
	return err
}

func (r *postgresRepo) Get(ctx context.Context, value string) (*Token, error) {
	const q = `
SELECT token, email, kind, expires_at
FROM tokens
WHERE token = $1
`
	var t Token
	err := r.pool.QueryRow(ctx, q, value).Scan(&t.Token, &t.Email, &t.Kind, &t.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) Delete(ctx context.Context, value string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, value)
	return err
}
