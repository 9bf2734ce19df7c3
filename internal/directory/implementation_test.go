// internal/directory/implementation_test.go
package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRegistry(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	customer, err := svc.AddCustomer(ctx, "alice SMITH", "alice@example.com", "1 Main St", "555-0100")
	require.NoError(t, err)
	assert.Equal(t, "Alice smith", customer.Name)

	_, err = svc.AddCustomer(ctx, "bob", "alice@example.com", "", "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.AddCustomer(ctx, "  ", "blank@example.com", "", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	updated, err := svc.UpdateCustomer(ctx, customer.ID, "alice", "alice@new.example.com", "2 Main St", "555-0101")
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", updated.Email)

	customers := svc.ListCustomers(ctx, "")
	require.Len(t, customers, 1)

	require.NoError(t, svc.RemoveCustomer(ctx, customer.ID))
	assert.ErrorIs(t, svc.RemoveCustomer(ctx, customer.ID), ErrCustomerNotFound)
}

func TestSupplierRegistry(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	first, err := svc.AddSupplier(ctx, "acme", "sales@acme.example", "10 Dock Rd", "Springfield", "555-0200", "wholesale")
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.Name)

	second, err := svc.AddSupplier(ctx, "globex", "sales@globex.example", "", "", "", "")
	require.NoError(t, err)

	_, err = svc.AddSupplier(ctx, "initech", "sales@acme.example", "", "", "", "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	suppliers := svc.ListSuppliers(ctx, "")
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Acme", suppliers[0].Name)
	assert.Equal(t, "Globex", suppliers[1].Name)

	filtered := svc.ListSuppliers(ctx, "GLOBEX")
	require.Len(t, filtered, 1)
	assert.Equal(t, second.ID, filtered[0].ID)

	_, err = svc.UpdateSupplier(ctx, second.ID, "globex", "sales@acme.example", "", "", "", "")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.NoError(t, svc.RemoveSupplier(ctx, first.ID))
	assert.Len(t, svc.ListSuppliers(ctx, ""), 1)
}
