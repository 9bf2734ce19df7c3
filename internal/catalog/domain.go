// internal/catalog/domain.go
package catalog

import (
	"errors"

	"github.com/google/uuid"
)

// Product is a sellable pharmacy item. Quantity is the stock still available
// for reservation; the purchasing workflow adjusts it through AdjustQuantity
// and never below zero.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
}

// Category groups products under a unique display name.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

var (
	ErrNotFound          = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidCategory   = errors.New("category name must not be blank")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrInvalidProduct    = errors.New("product needs a name, a non-negative price and a non-negative quantity")
	ErrQuantityUnderflow = errors.New("adjustment would drive product quantity negative")
)
