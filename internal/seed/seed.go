package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type variantSeed struct {
	Name   string
	Weight string
	Price  string
}

type productSeed struct {
	Name        string
	Description string
	Category    string
	Variants    []variantSeed
}

type zoneSeed struct {
	Name      string
	Weekdays  []int
	Window    string
	Fee       string
	Threshold string
}

// Apply inserts reference data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@frituurgros.be", "ChangeMe123", "Back office"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	zones := []zoneSeed{
		{Name: "Antwerpen", Weekdays: []int{1, 3, 5}, Window: "07:00-12:00", Fee: "7.50", Threshold: "250.00"},
		{Name: "Limburg", Weekdays: []int{2, 4}, Window: "08:00-13:00", Fee: "9.00", Threshold: "300.00"},
		{Name: "Oost-Vlaanderen", Weekdays: []int{1, 4}, Window: "07:00-12:00", Fee: "7.50", Threshold: "0"},
	}
	for _, z := range zones {
		if err := upsertZone(ctx, pool, z); err != nil {
			return fmt.Errorf("upsert zone %s: %w", z.Name, err)
		}
	}

	categories := []string{"Frieten", "Snacks", "Sauzen"}
	for _, name := range categories {
		if err := upsertCategory(ctx, pool, name); err != nil {
			return fmt.Errorf("upsert category %s: %w", name, err)
		}
	}

	products := []productSeed{
		{
			Name:        "Bintje frieten",
			Description: "Verse diepvriesfrieten van Bintje-aardappelen",
			Category:    "Frieten",
			Variants: []variantSeed{
				{Name: "Zak 2.5kg", Weight: "2.5kg", Price: "9.95"},
				{Name: "Zak 10kg", Weight: "10kg", Price: "34.50"},
			},
		},
		{
			Name:        "Rundvleeskroketten",
			Description: "Krokante kroketten met rundvleesragout",
			Category:    "Snacks",
			Variants: []variantSeed{
				{Name: "Doos 20 stuks", Weight: "1.4kg", Price: "18.40"},
				{Name: "Doos 48 stuks", Weight: "3.4kg", Price: "39.90"},
			},
		},
		{
			Name:        "Frikandellen",
			Description: "Klassieke frikandellen voor de frituur",
			Category:    "Snacks",
			Variants: []variantSeed{
				{Name: "Doos 40 stuks", Weight: "3.2kg", Price: "24.00"},
			},
		},
		{
			Name:        "Frietsaus emmer",
			Description: "Frietsaus in horeca-emmer",
			Category:    "Sauzen",
			Variants: []variantSeed{
				{Name: "Emmer 3L", Weight: "3L", Price: "12.80"},
				{Name: "Emmer 10L", Weight: "10L", Price: "36.00"},
			},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password, name string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO admins (email, password_hash, name, active)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hash), name)
	return err
}

func upsertZone(ctx context.Context, pool *pgxpool.Pool, z zoneSeed) error {
	const q = `
INSERT INTO zones (name, weekdays, time_window, flat_shipping_fee, free_shipping_threshold)
VALUES ($1, $2, $3, $4::numeric, $5::numeric)
ON CONFLICT (name) DO UPDATE SET
    weekdays = EXCLUDED.weekdays,
    time_window = EXCLUDED.time_window,
    flat_shipping_fee = EXCLUDED.flat_shipping_fee,
    free_shipping_threshold = EXCLUDED.free_shipping_threshold
`
	_, err := pool.Exec(ctx, q, z.Name, z.Weekdays, z.Window, z.Fee, z.Threshold)
	return err
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, name string) error {
	const q = `
INSERT INTO categories (name, slug)
VALUES ($1, lower(replace($1, ' ', '-')))
ON CONFLICT (name) DO NOTHING
`
	_, err := pool.Exec(ctx, q, name)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	var productID string
	const q = `
INSERT INTO products (name, description, category_id, active)
SELECT $1, $2, c.id, TRUE
FROM categories c
WHERE c.name = $3
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, category_id = EXCLUDED.category_id
RETURNING id::text
`
	if err := pool.QueryRow(ctx, q, p.Name, p.Description, p.Category).Scan(&productID); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID); err != nil {
		return err
	}
	for _, v := range p.Variants {
		const vq = `
INSERT INTO product_variants (product_id, name, weight, base_price)
VALUES ($1, $2, $3, $4::numeric)
`
		if _, err := pool.Exec(ctx, vq, productID, v.Name, v.Weight, v.Price); err != nil {
			return err
		}
	}
	return nil
}
