// internal/purchase/ledger.go
package purchase

import (
	"time"

	"github.com/google/uuid"
)

// Ledger owns the two ordered collections of the purchasing workflow: the
// staged line items of the open order and the append-only history of
// completed sales. Both keep strict insertion order; row order is part of
// the contract, not an accident of map iteration.
//
// The Ledger holds no business validation and no locking; the purchasing
// service serialises access and enforces the stock invariant around every
// mutation.
type Ledger struct {
	staged    []StagedLineItem
	completed []CompletedLineItem
	nextID    int64
}

// NewLedger creates an empty ledger. Purchase ids start at 1 and the
// counter only ever advances, so ids never collide across the process
// lifetime, settled and deleted items included.
func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// Stage appends a new line item to the open order and assigns it the next
// purchase id. It always succeeds.
func (l *Ledger) Stage(productID uuid.UUID, product, supplier string, quantity int, customer string, lineTotal float64) StagedLineItem {
	item := StagedLineItem{
		ID:        l.nextID,
		ProductID: productID,
		Product:   product,
		Supplier:  supplier,
		Customer:  customer,
		Quantity:  quantity,
		LineTotal: lineTotal,
	}
	l.nextID++
	l.staged = append(l.staged, item)
	return item
}

// Unstage removes the staged item with the given id and returns its
// quantity so the caller can restore stock. Ids are unique within the
// staged set, so at most one item is removed.
func (l *Ledger) Unstage(purchaseID int64) (int, error) {
	for i, item := range l.staged {
		if item.ID == purchaseID {
			l.staged = append(l.staged[:i], l.staged[i+1:]...)
			return item.Quantity, nil
		}
	}
	return 0, ErrPurchaseNotFound
}

// SettleAll converts every staged item into a completed record stamped with
// the given date, appends them to the history in insertion order and clears
// the staged set. It reports ErrNothingToSettle when the open order is
// empty, which is distinct from a successful zero-effect settlement. The
// returned slice is the settled batch only, not the whole history.
func (l *Ledger) SettleAll(on time.Time) ([]CompletedLineItem, error) {
	if len(l.staged) == 0 {
		return nil, ErrNothingToSettle
	}

	batch := make([]CompletedLineItem, 0, len(l.staged))
	stamp := on.Format(DateLayout)
	for _, item := range l.staged {
		batch = append(batch, CompletedLineItem{StagedLineItem: item, SettledOn: stamp})
	}
	l.completed = append(l.completed, batch...)
	l.staged = l.staged[:0]
	return batch, nil
}

// Staged returns a copy of the open order in insertion order.
func (l *Ledger) Staged() []StagedLineItem {
	out := make([]StagedLineItem, len(l.staged))
	copy(out, l.staged)
	return out
}

// Completed returns a copy of the sale history in settlement order.
func (l *Ledger) Completed() []CompletedLineItem {
	out := make([]CompletedLineItem, len(l.completed))
	copy(out, l.completed)
	return out
}

// StagedTotal recomputes the running total of the open order. Totals are
// never cached, so they cannot drift from the collections.
func (l *Ledger) StagedTotal() float64 {
	var total float64
	for _, item := range l.staged {
		total += item.LineTotal
	}
	return total
}

// CompletedTotal recomputes the total of all settled sales.
func (l *Ledger) CompletedTotal() float64 {
	var total float64
	for _, item := range l.completed {
		total += item.LineTotal
	}
	return total
}
