// internal/purchase/service.go
package purchase

import (
	"context"

	"github.com/google/uuid"

	"pharmalite/internal/catalog"
)

// Service defines the interface for the purchasing workflow.
type Service interface {
	AddLineItem(ctx context.Context, productID uuid.UUID, quantity int, supplier, customer string) (*StagedLineItem, error)
	RemoveLineItem(ctx context.Context, purchaseID int64) error
	Settle(ctx context.Context) (*SettlementResult, error)
	Staged(ctx context.Context) ([]StagedLineItem, float64)
	History(ctx context.Context) ([]CompletedLineItem, float64)
}

// ProductStore is the purchasing workflow's view of the product registry.
// The workflow only reads products and adjusts their quantity; it never
// creates or deletes them.
type ProductStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error)
}
