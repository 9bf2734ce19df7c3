// internal/directory/service.go
package directory

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the customer and supplier registries.
type Service interface {
	AddCustomer(ctx context.Context, name, email, address, telephone string) (*Customer, error)
	ListCustomers(ctx context.Context, name string) []Customer
	UpdateCustomer(ctx context.Context, id uuid.UUID, name, email, address, telephone string) (*Customer, error)
	RemoveCustomer(ctx context.Context, id uuid.UUID) error

	AddSupplier(ctx context.Context, name, email, address, city, telephone, description string) (*Supplier, error)
	ListSuppliers(ctx context.Context, name string) []Supplier
	UpdateSupplier(ctx context.Context, id uuid.UUID, name, email, address, city, telephone, description string) (*Supplier, error)
	RemoveSupplier(ctx context.Context, id uuid.UUID) error
}
