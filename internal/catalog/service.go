// internal/catalog/service.go
package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the catalog service.
type Service interface {
	AddProduct(ctx context.Context, name, description string, unitPrice float64, quantity int, category string) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, name string) []Product
	UpdateProduct(ctx context.Context, id uuid.UUID, name, description string, unitPrice float64, quantity int, category string) (*Product, error)
	RemoveProduct(ctx context.Context, id uuid.UUID) error
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error)

	AddCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) []Category
	RenameCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error)
	RemoveCategory(ctx context.Context, id uuid.UUID) error
}
