package cart

import (
	"context"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/localstore"
	"github.com/mediguide/storefront-client/pkg/logger"
	"github.com/shopspring/decimal"
)

type slotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type publisher interface {
	Publish()
}

// Store owns the persisted, insertion-ordered collection of cart lines.
// Every successful mutation writes the full snapshot in a single slot write
// and publishes exactly one cart-changed event; failed mutations write
// nothing and publish nothing.
type Store struct {
	slots  slotStore
	events publisher
	log    *logger.Logger
}

// NewStore builds a cart store over the local slot storage.
func NewStore(slots slotStore, events publisher, log *logger.Logger) (*Store, error) {
	if slots == nil {
		return nil, fmt.Errorf("slot store required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	return &Store{slots: slots, events: events, log: log}, nil
}

// Items returns the current cart lines in insertion order. It never fails:
// absent or unparseable persisted data yields an empty cart.
func (s *Store) Items(ctx context.Context) []Line {
	raw, ok, err := s.slots.Get(ctx, localstore.KeyCart)
	if err != nil {
		s.warn(ctx, "reading persisted cart failed, treating as empty", err)
		return nil
	}
	if !ok {
		return nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.warn(ctx, "persisted cart is malformed, treating as empty", err)
		return nil
	}
	return lines
}

// Add inserts the product as a new line or increments the existing one.
// When the cumulative quantity would exceed the product's available stock
// the cart is left unmodified and the error reports how many additional
// units are still purchasable.
func (s *Store) Add(ctx context.Context, product Product, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	lines := s.Items(ctx)
	available := product.StockQuantity
	if available < 0 {
		available = 0
	}

	idx := indexOf(lines, product.ID)
	current := 0
	if idx >= 0 {
		current = lines[idx].Quantity
	}

	if current+quantity > available {
		remaining := available - current
		if remaining < 0 {
			remaining = 0
		}
		var msg string
		if remaining > 0 {
			msg = fmt.Sprintf("only %d more item(s) available. You already have %d in your cart", remaining, current)
		} else {
			msg = fmt.Sprintf("cannot add more items. You already have %d in your cart (max available)", current)
		}
		return stockExceeded(remaining, msg)
	}

	if idx >= 0 {
		lines[idx].Quantity = current + quantity
		lines[idx].StockSnapshot = available
	} else {
		lines = append(lines, Line{
			ProductID:     product.ID,
			Name:          product.Name,
			UnitPrice:     product.Price,
			Image:         product.Image,
			Dosage:        product.Dosage,
			Quantity:      quantity,
			StockSnapshot: available,
		})
	}

	return s.persist(ctx, lines)
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op on the contents but still persists the snapshot and notifies.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	lines := s.Items(ctx)
	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	return s.persist(ctx, kept)
}

// UpdateQuantity sets the quantity for an existing line. Zero or negative
// removes the line; a value above the line's stock snapshot fails without
// touching the stored cart. An unknown product id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	lines := s.Items(ctx)
	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil
	}

	if quantity > lines[idx].StockSnapshot {
		return stockExceeded(lines[idx].StockSnapshot,
			fmt.Sprintf("only %d item(s) available in stock", lines[idx].StockSnapshot))
	}

	lines[idx].Quantity = quantity
	return s.persist(ctx, lines)
}

// Clear empties the cart. The contract is best-effort: a storage failure is
// logged, not surfaced, and suppresses the change event.
func (s *Store) Clear(ctx context.Context) {
	if err := s.slots.Delete(ctx, localstore.KeyCart); err != nil {
		s.warn(ctx, "clearing persisted cart failed", err)
		return
	}
	s.events.Publish()
}

// Total sums unit price times quantity over all lines.
func (s *Store) Total(ctx context.Context) decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.Items(ctx) {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count sums quantities over all lines.
func (s *Store) Count(ctx context.Context) int {
	count := 0
	for _, line := range s.Items(ctx) {
		count += line.Quantity
	}
	return count
}

func (s *Store) persist(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.slots.Put(ctx, localstore.KeyCart, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	s.events.Publish()
	return nil
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(ctx, fmt.Sprintf("%s: %v", msg, err))
}

func indexOf(lines []Line, productID int64) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
