// internal/identity/service.go
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the employee registry.
type Service interface {
	Register(ctx context.Context, username, password, name, address, email, role string) (*Employee, error)
	Authenticate(ctx context.Context, username, password string) (*Employee, error)
	ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error
	ListEmployees(ctx context.Context, name string) []Employee
	UpdateEmployee(ctx context.Context, id uuid.UUID, username, name, address, email, role string) (*Employee, error)
	RemoveEmployee(ctx context.Context, id uuid.UUID) error
}
