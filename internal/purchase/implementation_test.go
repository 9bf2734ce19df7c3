// internal/purchase/implementation_test.go
package purchase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmalite/internal/catalog"
)

func newTestProduct(t *testing.T, store catalog.Service, price float64, quantity int) *catalog.Product {
	t.Helper()
	product, err := store.AddProduct(context.Background(), "aspirin", "pain relief", price, quantity, "Analgesics")
	require.NoError(t, err)
	return product
}

func TestAddLineItemReservesStock(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 2.5, 10)

	item, err := svc.AddLineItem(ctx, product.ID, 4, "Acme", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	assert.Equal(t, 10.0, item.LineTotal)
	assert.Equal(t, product.Name, item.Product)

	updated, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)

	staged, total := svc.Staged(ctx)
	require.Len(t, staged, 1)
	assert.Equal(t, 10.0, total)
}

func TestAddThenRemoveIsANoOp(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 2.5, 10)

	item, err := svc.AddLineItem(ctx, product.ID, 4, "Acme", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLineItem(ctx, item.ID))

	updated, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)

	staged, total := svc.Staged(ctx)
	assert.Empty(t, staged)
	assert.Zero(t, total)
}

func TestAddLineItemRejections(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 5, 10)

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := svc.AddLineItem(ctx, product.ID, 0, "Acme", "Alice")
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = svc.AddLineItem(ctx, product.ID, -3, "Acme", "Alice")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("insufficient stock reports available", func(t *testing.T) {
		_, err := svc.AddLineItem(ctx, product.ID, 11, "Acme", "Alice")
		var insufficient *InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 10, insufficient.Available)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.AddLineItem(ctx, uuid.New(), 1, "Acme", "Alice")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	// Every rejection must leave stock and the staged set untouched.
	updated, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)
	staged, _ := svc.Staged(ctx)
	assert.Empty(t, staged)
}

func TestAddLineItemOutOfStock(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 5, 0)

	// Exhausted stock wins over the quantity checks.
	_, err := svc.AddLineItem(ctx, product.ID, 0, "Acme", "Alice")
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = svc.AddLineItem(ctx, product.ID, 3, "Acme", "Alice")
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestRemoveLineItemUnknownID(t *testing.T) {
	store := catalog.NewService(nil)
	svc := NewService(store, nil)

	err := svc.RemoveLineItem(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
}

func TestSettleScenario(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 5.0, 10)

	_, err := svc.AddLineItem(ctx, product.ID, 3, "Acme", "Alice")
	require.NoError(t, err)
	_, err = svc.AddLineItem(ctx, product.ID, 2, "Acme", "Bob")
	require.NoError(t, err)

	staged, total := svc.Staged(ctx)
	require.Len(t, staged, 2)
	assert.Equal(t, 15.0, staged[0].LineTotal)
	assert.Equal(t, 10.0, staged[1].LineTotal)
	assert.Equal(t, 25.0, total)

	updated, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	result, err := svc.Settle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 25.0, result.Total)

	history, historyTotal := svc.History(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, time.Now().Format(DateLayout), history[0].SettledOn)
	assert.Equal(t, 25.0, historyTotal)

	staged, _ = svc.Staged(ctx)
	assert.Empty(t, staged)

	// Settlement makes the stock reduction permanent without touching it.
	updated, err = store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestSettleWithNothingStaged(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)

	_, err := svc.Settle(ctx)
	assert.ErrorIs(t, err, ErrNothingToSettle)

	history, total := svc.History(ctx)
	assert.Empty(t, history)
	assert.Zero(t, total)
}

// vanishingStore simulates a product deleted between lookup and decrement.
type vanishingStore struct {
	product catalog.Product
}

func (v *vanishingStore) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	out := v.product
	return &out, nil
}

func (v *vanishingStore) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	return 0, errors.New("product vanished")
}

func TestAddLineItemRollsBackWhenDecrementFails(t *testing.T) {
	ctx := context.Background()
	store := &vanishingStore{product: catalog.Product{ID: uuid.New(), Name: "Aspirin", UnitPrice: 5, Quantity: 10}}
	svc := NewService(store, nil)

	_, err := svc.AddLineItem(ctx, store.product.ID, 2, "Acme", "Alice")
	assert.ErrorIs(t, err, ErrProductNotFound)

	staged, total := svc.Staged(ctx)
	assert.Empty(t, staged)
	assert.Zero(t, total)
}

func TestConcurrentAddsNeverOversell(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewService(nil)
	svc := NewService(store, nil)
	product := newTestProduct(t, store, 1.0, 20)

	const totalRequests = 50

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddLineItem(ctx, product.ID, 1, "Acme", "Alice"); err == nil {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), successCount.Load())

	updated, err := store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	staged, total := svc.Staged(ctx)
	assert.Len(t, staged, 20)
	assert.Equal(t, 20.0, total)
}
