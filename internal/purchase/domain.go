// internal/purchase/domain.go
package purchase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DateLayout is the day-precision stamp applied to settled purchases.
const DateLayout = "02/01/2006"

// StagedLineItem is a reserved-but-not-finalised purchase. Staging a line
// item reduces product stock immediately; the reservation is reversible
// until the order is settled. Items are immutable once staged.
type StagedLineItem struct {
	ID        int64     `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Product   string    `json:"product"`
	Supplier  string    `json:"supplier"`
	Customer  string    `json:"customer"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}

// CompletedLineItem is a finalised sale record. Created only by settlement,
// never mutated or deleted afterwards.
type CompletedLineItem struct {
	StagedLineItem
	SettledOn string `json:"settled_on"`
}

// SettlementResult summarises one settlement batch.
type SettlementResult struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPurchaseNotFound = errors.New("staged purchase not found")
	ErrOutOfStock       = errors.New("product has run out of stock")
	ErrInvalidQuantity  = errors.New("requested quantity must be a positive amount")
	ErrNothingToSettle  = errors.New("no purchases staged")
)

// InsufficientStockError rejects a reservation larger than the remaining
// stock and reports how much is available so the caller can render it.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested quantity exceeds the available quantity of %d", e.Available)
}
