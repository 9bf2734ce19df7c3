// internal/purchase/implementation.go
package purchase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// service implements the Service interface. One mutex guards every
// (ledger, stock) pair and the whole settlement, so an add racing a settle
// is serialised: it lands wholly before the batch or wholly after it, never
// half inside.
type service struct {
	mu       sync.Mutex
	ledger   *Ledger
	products ProductStore
	logger   *zap.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewService creates a new purchasing service instance around an empty
// ledger.
func NewService(products ProductStore, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		ledger:   NewLedger(),
		products: products,
		logger:   logger,
		tracer:   otel.Tracer("pharmalite/purchase"),
		now:      time.Now,
	}
}

// AddLineItem reserves stock for a new staged line item. The stage and the
// stock decrement succeed or fail as a pair: when the decrement cannot be
// performed the staged entry is rolled back, so no partial outcome is ever
// observable.
func (s *service) AddLineItem(ctx context.Context, productID uuid.UUID, quantity int, supplier, customer string) (*StagedLineItem, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.add",
		trace.WithAttributes(
			attribute.String("product.id", productID.String()),
			attribute.Int("quantity", quantity),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	switch {
	case product.Quantity == 0:
		return nil, ErrOutOfStock
	case quantity <= 0:
		return nil, ErrInvalidQuantity
	case quantity > product.Quantity:
		return nil, &InsufficientStockError{Available: product.Quantity}
	}

	item := s.ledger.Stage(product.ID, product.Name, supplier, quantity, customer, float64(quantity)*product.UnitPrice)

	if _, err := s.products.AdjustQuantity(ctx, productID, -quantity); err != nil {
		// The product vanished between lookup and decrement; compensate by
		// rolling the staged entry back.
		if _, uerr := s.ledger.Unstage(item.ID); uerr != nil {
			s.logger.Error("failed to roll back staged purchase",
				zap.Int64("purchase_id", item.ID),
				zap.Error(uerr),
			)
		}
		return nil, ErrProductNotFound
	}

	span.SetAttributes(attribute.Int64("purchase.id", item.ID))
	s.logger.Info("purchase staged",
		zap.Int64("purchase_id", item.ID),
		zap.String("product_id", productID.String()),
		zap.Int("quantity", quantity),
		zap.Float64("line_total", item.LineTotal),
	)

	return &item, nil
}

// RemoveLineItem deletes a staged line item and restores its quantity to
// the product, the exact inverse of AddLineItem's decrement.
func (s *service) RemoveLineItem(ctx context.Context, purchaseID int64) error {
	ctx, span := s.tracer.Start(ctx, "purchase.remove",
		trace.WithAttributes(attribute.Int64("purchase.id", purchaseID)),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.findStaged(purchaseID)
	if !ok {
		return ErrPurchaseNotFound
	}

	quantity, err := s.ledger.Unstage(purchaseID)
	if err != nil {
		return ErrPurchaseNotFound
	}

	if _, err := s.products.AdjustQuantity(ctx, item.ProductID, quantity); err != nil {
		// The product was deleted while its stock was reserved; there is
		// nothing left to restore the quantity to.
		s.logger.Warn("could not restore stock for removed purchase",
			zap.Int64("purchase_id", purchaseID),
			zap.String("product_id", item.ProductID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("purchase removed",
		zap.Int64("purchase_id", purchaseID),
		zap.Int("quantity_restored", quantity),
	)
	return nil
}

// Settle converts the whole open order into completed sales in one atomic
// step. Stock is not touched: it was already decremented at add time and
// the reduction becomes permanent here.
func (s *service) Settle(ctx context.Context) (*SettlementResult, error) {
	_, span := s.tracer.Start(ctx, "purchase.settle")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	batch, err := s.ledger.SettleAll(s.now())
	if err != nil {
		return nil, err
	}

	result := &SettlementResult{Count: len(batch)}
	for _, item := range batch {
		result.Total += item.LineTotal
	}

	span.SetAttributes(
		attribute.Int("settled.count", result.Count),
		attribute.Float64("settled.total", result.Total),
	)
	s.logger.Info("purchases settled",
		zap.Int("count", result.Count),
		zap.Float64("total", result.Total),
	)

	return result, nil
}

// Staged returns the open order in insertion order with its running total.
func (s *service) Staged(ctx context.Context) ([]StagedLineItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Staged(), s.ledger.StagedTotal()
}

// History returns the sale history in settlement order with its total.
func (s *service) History(ctx context.Context) ([]CompletedLineItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Completed(), s.ledger.CompletedTotal()
}

// findStaged looks up a staged item without removing it. Callers must hold
// the lock.
func (s *service) findStaged(purchaseID int64) (StagedLineItem, bool) {
	for _, item := range s.ledger.staged {
		if item.ID == purchaseID {
			return item, true
		}
	}
	return StagedLineItem{}, false
}
