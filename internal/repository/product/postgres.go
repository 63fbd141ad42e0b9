package product

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

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO products (name, description, category_id, image_url, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	var id string
	if err := tx.QueryRow(ctx, q, p.Name, p.Description, p.CategoryID, p.ImageURL, p.Active).Scan(&id); err != nil {
		return nil, err
	}

	for _, v := range p.Variants {
		if err := insertVariant(ctx, tx, id, v); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
UPDATE products
SET name = $1, description = $2, category_id = $3, image_url = $4, active = $5
WHERE id = $6
`, p.Name, p.Description, p.CategoryID, p.ImageURL, p.Active, p.ID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	// Variants are replaced wholesale; order lines keep their own copies.
	if _, err := tx.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return nil, err
	}
	for _, v := range p.Variants {
		if err := insertVariant(ctx, tx, p.ID, v); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *postgresRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, description, category_id::text, image_url, active, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CategoryID,
		&p.ImageURL,
		&p.Active,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	variants, err := r.variantsFor(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variants = variants[p.ID]
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context, categoryID string, activeOnly bool) ([]domain.Product, error) {
	q := `
SELECT id::text, name, description, category_id::text, image_url, active, created_at
FROM products
WHERE 1=1
`
	var args []interface{}
	if categoryID != "" {
		args = append(args, categoryID)
		q += ` AND category_id = $1`
	}
	if activeOnly {
		q += ` AND active`
	}
	q += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	var ids []string
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	variants, err := r.variantsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Variants = variants[products[i].ID]
	}
	return products, nil
}

func (r *postgresRepo) variantsFor(ctx context.Context, productIDs []string) (map[string][]domain.Variant, error) {
	out := make(map[string][]domain.Variant)
	if len(productIDs) == 0 {
		return out, nil
	}
	const q = `
SELECT id::text, product_id::text, name, weight, base_price::text, created_at
FROM product_variants
WHERE product_id = ANY($1)
ORDER BY base_price
`
	rows, err := r.pool.Query(ctx, q, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.Variant
		var price string
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Weight, &price, &v.CreatedAt); err != nil {
			return nil, err
		}
		if v.BasePrice, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		out[v.ProductID] = append(out[v.ProductID], v)
	}
	return out, rows.Err()
}

func insertVariant(ctx context.Context, tx pgx.Tx, productID string, v domain.Variant) error {
	_, err := tx.Exec(ctx, `
INSERT INTO product_variants (product_id, name, weight, base_price)
VALUES ($1, $2, $3, $4::numeric)
`, productID, v.Name, v.Weight, v.BasePrice.String())
	return err
}
