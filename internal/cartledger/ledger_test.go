package cartledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
)

func testLine(productID, variantID string, qty int) domain.CartLine {
	return domain.CartLine{
		ProductID:     productID,
		ProductName:   "Bintje frieten",
		VariantID:     variantID,
		VariantName:   "2.5kg",
		UnitPriceBase: decimal.NewFromFloat(9.95),
		UnitPrice:     decimal.NewFromFloat(8.96),
		Quantity:      qty,
	}
}

func TestAddMergesSameProductVariant(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	if _, err := ledger.Add(ctx, testLine("p1", "v1", 2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := ledger.Add(ctx, testLine("p1", "v1", 3))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("len = %d, want 1 merged line", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", lines[0].Quantity)
	}
}

func TestAddDifferentVariantAppends(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	ledger.Add(ctx, testLine("p1", "v1", 1))
	lines, err := ledger.Add(ctx, testLine("p1", "v2", 1))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	ledger := New(NewMemoryStore())
	if _, err := ledger.Add(context.Background(), testLine("p1", "v1", 0)); err != domain.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())
	ledger.Add(ctx, testLine("p1", "v1", 3))

	lines, err := ledger.UpdateQuantity(ctx, 0, -100)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if lines[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", lines[0].Quantity)
	}
}

func TestUpdateQuantityOutOfRangeIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())
	ledger.Add(ctx, testLine("p1", "v1", 3))

	lines, err := ledger.UpdateQuantity(ctx, 5, 1)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())
	ledger.Add(ctx, testLine("p1", "v1", 1))
	ledger.Add(ctx, testLine("p2", "v1", 2))

	lines, err := ledger.Remove(ctx, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(lines) != 1 || lines[0].ProductID != "p2" {
		t.Fatalf("unexpected lines %+v", lines)
	}

	// Out of range is a silent no-op.
	lines, err = ledger.Remove(ctx, 7)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())
	ledger.Add(ctx, testLine("p1", "v1", 1))

	if err := ledger.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if lines := ledger.Load(ctx); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestLoadSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := New(store)
	first.Add(ctx, testLine("p1", "v1", 2))
	first.Add(ctx, testLine("p2", "v3", 1))
	before := first.Load(ctx)

	// A fresh ledger over the same store simulates a page reload.
	second := New(store)
	after := second.Load(ctx)
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Key() != before[i].Key() || after[i].Quantity != before[i].Quantity {
			t.Fatalf("line %d mismatch: %+v vs %+v", i, after[i], before[i])
		}
		if !after[i].UnitPrice.Equal(before[i].UnitPrice) {
			t.Fatalf("line %d price mismatch: %s vs %s", i, after[i].UnitPrice, before[i].UnitPrice)
		}
	}
}

func TestCorruptPayloadLoadsAsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Save(ctx, []byte("{not json"))

	ledger := New(store)
	if lines := ledger.Load(ctx); len(lines) != 0 {
		t.Fatalf("expected empty cart for corrupt payload, got %+v", lines)
	}
}

func TestOnChangeNotifies(t *testing.T) {
	ctx := context.Background()
	ledger := New(NewMemoryStore())

	var observed [][]domain.CartLine
	ledger.OnChange(func(lines []domain.CartLine) {
		observed = append(observed, lines)
	})

	ledger.Add(ctx, testLine("p1", "v1", 1))
	ledger.UpdateQuantity(ctx, 0, 2)
	ledger.Clear(ctx)

	if len(observed) != 3 {
		t.Fatalf("notifications = %d, want 3", len(observed))
	}
	if len(observed[1]) != 1 || observed[1][0].Quantity != 3 {
		t.Fatalf("unexpected second notification %+v", observed[1])
	}
	if len(observed[2]) != 0 {
		t.Fatalf("clear notification should carry an empty cart, got %+v", observed[2])
	}
}

func TestLastWriteWinsAcrossLedgers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tabA := New(store)
	tabB := New(store)

	tabA.Add(ctx, testLine("p1", "v1", 1))
	tabB.Add(ctx, testLine("p2", "v1", 1))

	// Both tabs loaded before writing; B saved last, so B's view stands.
	lines := New(store).Load(ctx)
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2 (B loaded A's write before saving)", len(lines))
	}

	// Concurrent blind writes: A clears after B added, A wins.
	tabB.Add(ctx, testLine("p3", "v1", 1))
	tabA.Clear(ctx)
	if lines := New(store).Load(ctx); len(lines) != 0 {
		t.Fatalf("expected A's clear to win, got %+v", lines)
	}
}

func TestManagerMemoizesLedgers(t *testing.T) {
	m := NewManager(MemoryOpener())
	if m.For("client-1") != m.For("client-1") {
		t.Fatal("expected the same ledger for the same owner")
	}
	if m.For("client-1") == m.For("client-2") {
		t.Fatal("expected distinct ledgers per owner")
	}
}
