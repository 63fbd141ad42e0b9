// Package cartledger holds a buyer's cart as a single persisted document:
// an ordered list of lines serialized as JSON under one fixed key.
//
// The ledger is single-writer per owner. When two ledgers share a store the
// last save wins; there is no merge or conflict resolution. That mirrors a
// buyer with two browser tabs open and is an accepted limitation.
package cartledger

import (
	"context"
	"encoding/json"
	"sync"

	"frituurgros/internal/domain"
)

// Listener observes the cart after every persisted mutation.
type Listener func(lines []domain.CartLine)

// Ledger mutates and persists one owner's cart through a Store.
type Ledger struct {
	store Store

	mu        sync.Mutex
	listeners []Listener
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Load reads the persisted cart. A missing or unparsable payload loads as
// an empty cart; corruption is never surfaced to the buyer.
func (l *Ledger) Load(ctx context.Context) []domain.CartLine {
	payload, err := l.store.Load(ctx)
	if err != nil || len(payload) == 0 {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil
	}
	return lines
}

// Add appends a line, or increments the quantity of the existing line with
// the same product and variant.
func (l *Ledger) Add(ctx context.Context, line domain.CartLine) ([]domain.CartLine, error) {
	if line.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	lines := l.Load(ctx)
	merged := false
	for i := range lines {
		if lines[i].Key() == line.Key() {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	if err := l.persist(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity adjusts the line at index by delta, never below 1. Removal
// is a distinct operation. An out-of-range index is a no-op.
func (l *Ledger) UpdateQuantity(ctx context.Context, index, delta int) ([]domain.CartLine, error) {
	lines := l.Load(ctx)
	if index < 0 || index >= len(lines) {
		return lines, nil
	}
	qty := lines[index].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	lines[index].Quantity = qty
	if err := l.persist(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove deletes the line at index. An out-of-range index is a no-op.
func (l *Ledger) Remove(ctx context.Context, index int) ([]domain.CartLine, error) {
	lines := l.Load(ctx)
	if index < 0 || index >= len(lines) {
		return lines, nil
	}
	lines = append(lines[:index], lines[index+1:]...)
	if err := l.persist(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear empties the cart and persists the empty state.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Clear(ctx); err != nil {
		return err
	}
	l.notify(nil)
	return nil
}

// OnChange registers a listener invoked after every persisted mutation made
// through this ledger. Writes by other owners of the same store are only
// observed via the store's own notification (see RedisStore.Watch).
func (l *Ledger) OnChange(fn Listener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Ledger) persist(ctx context.Context, lines []domain.CartLine) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := l.store.Save(ctx, payload); err != nil {
		return err
	}
	l.notify(lines)
	return nil
}

func (l *Ledger) notify(lines []domain.CartLine) {
	l.mu.Lock()
	listeners := make([]Listener, len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn(lines)
	}
}
