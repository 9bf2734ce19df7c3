// internal/directory/implementation.go
package directory

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
// collections, one per registry. Email addresses are unique within each
// registry.
type service struct {
	mu            sync.RWMutex
	customers     map[uuid.UUID]*Customer
	customerOrder []uuid.UUID
	suppliers     map[uuid.UUID]*Supplier
	supplierOrder []uuid.UUID
	logger        *zap.Logger
}

// NewService creates a new directory service instance.
func NewService(logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		customers: make(map[uuid.UUID]*Customer),
		suppliers: make(map[uuid.UUID]*Supplier),
		logger:    logger,
	}
}

// AddCustomer registers a new customer.
func (s *service) AddCustomer(ctx context.Context, name, email, address, telephone string) (*Customer, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.customerEmailUnique(email, uuid.Nil) {
		return nil, ErrDuplicateEmail
	}

	customer := &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Address:   address,
		Telephone: telephone,
	}
	s.customers[customer.ID] = customer
	s.customerOrder = append(s.customerOrder, customer.ID)

	s.logger.Info("customer added", zap.String("customer_id", customer.ID.String()))

	out := *customer
	return &out, nil
}

// ListCustomers returns customers in insertion order, optionally filtered
// by name (case-insensitive exact match).
func (s *service) ListCustomers(ctx context.Context, name string) []Customer {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Customer, 0, len(s.customerOrder))
	for _, id := range s.customerOrder {
		customer := s.customers[id]
		if name != "" && !strings.EqualFold(customer.Name, name) {
			continue
		}
		out = append(out, *customer)
	}
	return out
}

// UpdateCustomer replaces the stored record for an existing customer.
func (s *service) UpdateCustomer(ctx context.Context, id uuid.UUID, name, email, address, telephone string) (*Customer, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	if !s.customerEmailUnique(email, id) {
		return nil, ErrDuplicateEmail
	}

	customer.Name = name
	customer.Email = email
	customer.Address = address
	customer.Telephone = telephone

	out := *customer
	return &out, nil
}

// RemoveCustomer deletes a customer.
func (s *service) RemoveCustomer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return ErrCustomerNotFound
	}
	delete(s.customers, id)
	for i, cid := range s.customerOrder {
		if cid == id {
			s.customerOrder = append(s.customerOrder[:i], s.customerOrder[i+1:]...)
			break
		}
	}
	return nil
}

// AddSupplier registers a new supplier.
func (s *service) AddSupplier(ctx context.Context, name, email, address, city, telephone, description string) (*Supplier, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.supplierEmailUnique(email, uuid.Nil) {
		return nil, ErrDuplicateEmail
	}

	supplier := &Supplier{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Address:     address,
		City:        city,
		Telephone:   telephone,
		Description: description,
	}
	s.suppliers[supplier.ID] = supplier
	s.supplierOrder = append(s.supplierOrder, supplier.ID)

	s.logger.Info("supplier added", zap.String("supplier_id", supplier.ID.String()))

	out := *supplier
	return &out, nil
}

// ListSuppliers returns suppliers in insertion order, optionally filtered
// by name (case-insensitive exact match).
func (s *service) ListSuppliers(ctx context.Context, name string) []Supplier {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Supplier, 0, len(s.supplierOrder))
	for _, id := range s.supplierOrder {
		supplier := s.suppliers[id]
		if name != "" && !strings.EqualFold(supplier.Name, name) {
			continue
		}
		out = append(out, *supplier)
	}
	return out
}

// UpdateSupplier replaces the stored record for an existing supplier.
func (s *service) UpdateSupplier(ctx context.Context, id uuid.UUID, name, email, address, city, telephone, description string) (*Supplier, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, ok := s.suppliers[id]
	if !ok {
		return nil, ErrSupplierNotFound
	}
	if !s.supplierEmailUnique(email, id) {
		return nil, ErrDuplicateEmail
	}

	supplier.Name = name
	supplier.Email = email
	supplier.Address = address
	supplier.City = city
	supplier.Telephone = telephone
	supplier.Description = description

	out := *supplier
	return &out, nil
}

// RemoveSupplier deletes a supplier.
func (s *service) RemoveSupplier(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[id]; !ok {
		return ErrSupplierNotFound
	}
	delete(s.suppliers, id)
	for i, sid := range s.supplierOrder {
		if sid == id {
			s.supplierOrder = append(s.supplierOrder[:i], s.supplierOrder[i+1:]...)
			break
		}
	}
	return nil
}

// customerEmailUnique reports whether no customer other than exclude uses
// the email. Callers must hold the lock.
func (s *service) customerEmailUnique(email string, exclude uuid.UUID) bool {
	for _, customer := range s.customers {
		if customer.ID != exclude && customer.Email == email {
			return false
		}
	}
	return true
}

// supplierEmailUnique reports whether no supplier other than exclude uses
// the email. Callers must hold the lock.
func (s *service) supplierEmailUnique(email string, exclude uuid.UUID) bool {
	for _, supplier := range s.suppliers {
		if supplier.ID != exclude && supplier.Email == email {
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
