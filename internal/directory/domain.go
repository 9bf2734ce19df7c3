// internal/directory/domain.go
package directory

import (
	"errors"

	"github.com/google/uuid"
)

// Customer is a registered buyer. The purchasing workflow only consumes the
// display name.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Telephone string    `json:"telephone"`
}

// Supplier is a registered product provider.
type Supplier struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Telephone   string    `json:"telephone"`
	Description string    `json:"description"`
}

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrInvalidName      = errors.New("name must not be blank")
)
