// internal/purchase/ledger_test.go
package purchase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStageKeepsInsertionOrder(t *testing.T) {
	ledger := NewLedger()
	productID := uuid.New()

	first := ledger.Stage(productID, "Aspirin", "Acme", 3, "Alice", 15)
	second := ledger.Stage(productID, "Aspirin", "Acme", 2, "Bob", 10)

	staged := ledger.Staged()
	require.Len(t, staged, 2)
	assert.Equal(t, first, staged[0])
	assert.Equal(t, second, staged[1])
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, 25.0, ledger.StagedTotal())
}

func TestLedgerUnstageReturnsQuantity(t *testing.T) {
	ledger := NewLedger()
	item := ledger.Stage(uuid.New(), "Aspirin", "Acme", 4, "Alice", 20)

	quantity, err := ledger.Unstage(item.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, quantity)
	assert.Empty(t, ledger.Staged())
	assert.Zero(t, ledger.StagedTotal())
}

func TestLedgerUnstageUnknownID(t *testing.T) {
	ledger := NewLedger()
	ledger.Stage(uuid.New(), "Aspirin", "Acme", 1, "Alice", 5)

	_, err := ledger.Unstage(99)
	assert.ErrorIs(t, err, ErrPurchaseNotFound)
	assert.Len(t, ledger.Staged(), 1)
}

func TestLedgerSettleAllEmpty(t *testing.T) {
	ledger := NewLedger()

	_, err := ledger.SettleAll(time.Now())
	assert.ErrorIs(t, err, ErrNothingToSettle)
	assert.Empty(t, ledger.Completed())
}

func TestLedgerSettleAllMovesEverything(t *testing.T) {
	ledger := NewLedger()
	productID := uuid.New()
	a := ledger.Stage(productID, "Aspirin", "Acme", 3, "Alice", 30)
	b := ledger.Stage(productID, "Aspirin", "Acme", 2, "Bob", 20)

	on := time.Date(2026, time.March, 9, 15, 4, 5, 0, time.UTC)
	batch, err := ledger.SettleAll(on)
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, a, batch[0].StagedLineItem)
	assert.Equal(t, b, batch[1].StagedLineItem)
	assert.Equal(t, "09/03/2026", batch[0].SettledOn)
	assert.Equal(t, "09/03/2026", batch[1].SettledOn)

	assert.Empty(t, ledger.Staged())
	assert.Equal(t, batch, ledger.Completed())
	assert.Equal(t, 50.0, ledger.CompletedTotal())
	assert.Zero(t, ledger.StagedTotal())
}

func TestLedgerIDCounterSurvivesSettlement(t *testing.T) {
	ledger := NewLedger()
	productID := uuid.New()

	first := ledger.Stage(productID, "Aspirin", "Acme", 1, "Alice", 5)
	_, err := ledger.SettleAll(time.Now())
	require.NoError(t, err)

	next := ledger.Stage(productID, "Aspirin", "Acme", 1, "Bob", 5)
	assert.Greater(t, next.ID, first.ID)
}

func TestLedgerCompletedHistoryAccumulates(t *testing.T) {
	ledger := NewLedger()
	productID := uuid.New()

	ledger.Stage(productID, "Aspirin", "Acme", 1, "Alice", 5)
	_, err := ledger.SettleAll(time.Now())
	require.NoError(t, err)

	ledger.Stage(productID, "Ibuprofen", "Acme", 2, "Bob", 12)
	_, err = ledger.SettleAll(time.Now())
	require.NoError(t, err)

	completed := ledger.Completed()
	require.Len(t, completed, 2)
	assert.Equal(t, "Aspirin", completed[0].Product)
	assert.Equal(t, "Ibuprofen", completed[1].Product)
	assert.Equal(t, 17.0, ledger.CompletedTotal())
}
