// internal/identity/domain.go
package identity

import (
	"errors"

	"github.com/google/uuid"
)

// Employee is a registered staff member. The Role string is consumed by the
// presentation layer as a binary authorized/unauthorized fact; no policy
// lives here.
type Employee struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

// credential holds an employee's salted password hash, kept apart from the
// Employee record so it never leaks through listings.
type credential struct {
	PasswordHash string
	Salt         string
}

var (
	ErrNotFound           = errors.New("employee not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("email format is not valid")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRateLimited        = errors.New("rate limit exceeded")
)
