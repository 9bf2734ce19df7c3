// internal/catalog/implementation.go
package catalog

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// service implements the Service interface on top of volatile in-memory
// collections. Insertion order is preserved so listings are stable.
type service struct {
	mu            sync.RWMutex
	products      map[uuid.UUID]*Product
	productOrder  []uuid.UUID
	categories    map[uuid.UUID]*Category
	categoryOrder []uuid.UUID
	logger        *zap.Logger
}

// NewService creates a new catalog service instance.
func NewService(logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		products:   make(map[uuid.UUID]*Product),
		categories: make(map[uuid.UUID]*Category),
		logger:     logger,
	}
}

// AddProduct registers a new product in the catalog.
func (s *service) AddProduct(ctx context.Context, name, description string, unitPrice float64, quantity int, category string) (*Product, error) {
	name = normalizeName(name)
	if name == "" || unitPrice < 0 || quantity < 0 {
		return nil, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Category:    category,
	}
	s.products[product.ID] = product
	s.productOrder = append(s.productOrder, product.ID)

	s.logger.Info("product added",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity),
	)

	out := *product
	return &out, nil
}

// GetProduct retrieves a product by its ID.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *product
	return &out, nil
}

// ListProducts returns products in insertion order, optionally filtered by
// name (case-insensitive exact match).
func (s *service) ListProducts(ctx context.Context, name string) []Product {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		product := s.products[id]
		if name != "" && !strings.EqualFold(product.Name, name) {
			continue
		}
		out = append(out, *product)
	}
	return out
}

// UpdateProduct replaces the stored record for an existing product.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, name, description string, unitPrice float64, quantity int, category string) (*Product, error) {
	name = normalizeName(name)
	if name == "" || unitPrice < 0 || quantity < 0 {
		return nil, ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	product.Name = name
	product.Description = description
	product.UnitPrice = unitPrice
	product.Quantity = quantity
	product.Category = category

	out := *product
	return &out, nil
}

// RemoveProduct deletes a product from the catalog.
func (s *service) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

// AdjustQuantity applies a stock delta and returns the new quantity. The
// adjustment is rejected outright when it would make the quantity negative,
// so a partial decrement is never observable.
func (s *service) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return 0, ErrNotFound
	}
	if product.Quantity+delta < 0 {
		return product.Quantity, ErrQuantityUnderflow
	}
	product.Quantity += delta
	return product.Quantity, nil
}

// AddCategory creates a category with a unique name.
func (s *service) AddCategory(ctx context.Context, name string) (*Category, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryNameUnique(name, uuid.Nil) {
		return nil, ErrDuplicateCategory
	}

	category := &Category{ID: uuid.New(), Name: name}
	s.categories[category.ID] = category
	s.categoryOrder = append(s.categoryOrder, category.ID)

	out := *category
	return &out, nil
}

// ListCategories returns categories in insertion order.
func (s *service) ListCategories(ctx context.Context) []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		out = append(out, *s.categories[id])
	}
	return out
}

// RenameCategory changes a category name, keeping names unique.
func (s *service) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	if !s.categoryNameUnique(name, id) {
		return nil, ErrDuplicateCategory
	}

	category.Name = name
	out := *category
	return &out, nil
}

// RemoveCategory deletes a category.
func (s *service) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(s.categories, id)
	for i, cid := range s.categoryOrder {
		if cid == id {
			s.categoryOrder = append(s.categoryOrder[:i], s.categoryOrder[i+1:]...)
			break
		}
	}
	return nil
}

// categoryNameUnique reports whether no category other than exclude carries
// the name. Callers must hold the lock.
func (s *service) categoryNameUnique(name string, exclude uuid.UUID) bool {
	for _, category := range s.categories {
		if category.ID != exclude && category.Name == name {
			return false
		}
	}
	return true
}

// normalizeName uppercases the first rune and lowercases the rest.
func normalizeName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + strings.ToLower(value[size:])
}
