package order

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
	"frituurgros/internal/migrate"
)

func TestPostgres_HeaderLinesRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	clientID := insertClient(ctx, t, pool)
	repo := NewPostgres(pool)

	header, err := repo.CreateHeader(ctx, domain.Order{
		ClientID:              clientID,
		Status:                domain.OrderPlaced,
		Subtotal:              decimal.RequireFromString("69.00"),
		ShippingFee:           decimal.RequireFromString("7.50"),
		Total:                 decimal.RequireFromString("76.50"),
		DiscountPercentage:    decimal.Zero,
		RequestedDeliveryDate: time.Now().AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("CreateHeader: %v", err)
	}
	if header.ID == "" || header.Status != domain.OrderPlaced {
		t.Fatalf("unexpected header %+v", header)
	}

	lines := []domain.OrderLine{
		{
			ProductID:   "prod-1",
			ProductName: "Bintje frieten",
			VariantID:   "var-1",
			VariantName: "Zak 10kg",
			Quantity:    2,
			UnitPrice:   decimal.RequireFromString("34.50"),
			LineTotal:   decimal.RequireFromString("69.00"),
		},
	}
	if err := repo.CreateLines(ctx, header.ID, lines); err != nil {
		t.Fatalf("CreateLines: %v", err)
	}

	fetched, err := repo.GetByID(ctx, header.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(fetched.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(fetched.Lines))
	}
	if !fetched.Lines[0].UnitPrice.Equal(decimal.RequireFromString("34.50")) {
		t.Errorf("unit price mismatch: %s", fetched.Lines[0].UnitPrice)
	}
	if !fetched.Total.Equal(decimal.RequireFromString("76.50")) {
		t.Errorf("total mismatch: %s", fetched.Total)
	}
}

func TestPostgres_DeleteHeaderRemovesOrder(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	clientID := insertClient(ctx, t, pool)
	repo := NewPostgres(pool)

	header, err := repo.CreateHeader(ctx, domain.Order{
		ClientID:              clientID,
		Status:                domain.OrderPlaced,
		Subtotal:              decimal.RequireFromString("10.00"),
		ShippingFee:           decimal.Zero,
		Total:                 decimal.RequireFromString("10.00"),
		DiscountPercentage:    decimal.Zero,
		RequestedDeliveryDate: time.Now().AddDate(0, 0, 3),
	})
	if err != nil {
		t.Fatalf("CreateHeader: %v", err)
	}

	if err := repo.DeleteHeader(ctx, header.ID); err != nil {
		t.Fatalf("DeleteHeader: %v", err)
	}
	if _, err := repo.GetByID(ctx, header.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_lines, orders, clients, tokens RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func insertClient(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(ctx, `
INSERT INTO clients (email, password_hash, company_name, status)
VALUES ('test@frituur.test', 'x', 'Frituur Test', 'active')
RETURNING id::text
`).Scan(&id)
	if err != nil {
		t.Fatalf("insert client: %v", err)
	}
	return id
}
