// internal/identity/implementation.go
package identity

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// service implements the Service interface on top of a volatile in-memory
// registry. Registration and authentication share one rate limiter.
type service struct {
	mu          sync.RWMutex
	employees   map[uuid.UUID]*Employee
	order       []uuid.UUID
	credentials map[uuid.UUID]credential
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewService creates a new identity service instance. every and burst
// configure the login rate limiter.
func NewService(logger *zap.Logger, every rate.Limit, burst int) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		employees:   make(map[uuid.UUID]*Employee),
		credentials: make(map[uuid.UUID]credential),
		limiter:     rate.NewLimiter(every, burst),
		logger:      logger,
	}
}

// Register creates a new employee with a hashed credential. Username and
// email must be unique across the registry.
func (s *service) Register(ctx context.Context, username, password, name, address, email, role string) (*Employee, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.usernameUnique(username, uuid.Nil) {
		return nil, ErrDuplicateUsername
	}
	if !s.emailUnique(email, uuid.Nil) {
		return nil, ErrDuplicateEmail
	}

	passwordHash, salt, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	employee := &Employee{
		ID:       uuid.New(),
		Username: username,
		Name:     normalizeName(name),
		Address:  address,
		Email:    email,
		Role:     role,
	}
	s.employees[employee.ID] = employee
	s.order = append(s.order, employee.ID)
	s.credentials[employee.ID] = credential{PasswordHash: passwordHash, Salt: salt}

	s.logger.Info("employee registered",
		zap.String("employee_id", employee.ID.String()),
		zap.String("username", employee.Username),
	)

	out := *employee
	return &out, nil
}

// Authenticate verifies an employee's credentials and returns the employee
// if successful.
func (s *service) Authenticate(ctx context.Context, username, password string) (*Employee, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, employee := range s.employees {
		if employee.Username != username {
			continue
		}
		cred := s.credentials[employee.ID]
		ok, err := verifyPassword(password, cred.Salt, cred.PasswordHash)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out := *employee
		return &out, nil
	}

	return nil, ErrInvalidCredentials
}

// ChangePassword replaces the stored credential for an employee.
func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	passwordHash, salt, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return ErrNotFound
	}
	s.credentials[id] = credential{PasswordHash: passwordHash, Salt: salt}
	return nil
}

// ListEmployees returns employees in insertion order, optionally filtered
// by name (case-insensitive exact match).
func (s *service) ListEmployees(ctx context.Context, name string) []Employee {
	name = strings.TrimSpace(name)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Employee, 0, len(s.order))
	for _, id := range s.order {
		employee := s.employees[id]
		if name != "" && !strings.EqualFold(employee.Name, name) {
			continue
		}
		out = append(out, *employee)
	}
	return out
}

// UpdateEmployee replaces the stored record, keeping username and email
// unique. The credential is untouched.
func (s *service) UpdateEmployee(ctx context.Context, id uuid.UUID, username, name, address, email, role string) (*Employee, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.usernameUnique(username, id) {
		return nil, ErrDuplicateUsername
	}
	if !s.emailUnique(email, id) {
		return nil, ErrDuplicateEmail
	}

	employee.Username = username
	employee.Name = normalizeName(name)
	employee.Address = address
	employee.Email = email
	employee.Role = role

	out := *employee
	return &out, nil
}

// RemoveEmployee deletes an employee and their credential.
func (s *service) RemoveEmployee(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return ErrNotFound
	}
	delete(s.employees, id)
	delete(s.credentials, id)
	for i, eid := range s.order {
		if eid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// usernameUnique reports whether no employee other than exclude uses the
// username. Callers must hold the lock.
func (s *service) usernameUnique(username string, exclude uuid.UUID) bool {
	for _, employee := range s.employees {
		if employee.ID != exclude && employee.Username == username {
			return false
		}
	}
	return true
}

// emailUnique reports whether no employee other than exclude uses the
// email. Callers must hold the lock.
func (s *service) emailUnique(email string, exclude uuid.UUID) bool {
	for _, employee := range s.employees {
		if employee.ID != exclude && employee.Email == email {
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
