// internal/identity/implementation_test.go
package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestService() Service {
	return NewService(nil, rate.Inf, 1)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	employee, err := svc.Register(ctx, "jdoe", "S3cret!pass", "jane DOE", "1 Main St", "jane@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Jane doe", employee.Name)
	assert.Equal(t, "admin", employee.Role)

	authed, err := svc.Authenticate(ctx, "jdoe", "S3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, employee.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "jdoe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "S3cret!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUniquenessAndValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "pw", "Jane", "", "jane@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "jdoe", "pw", "John", "", "john@example.com", "clerk")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = svc.Register(ctx, "john", "pw", "John", "", "jane@example.com", "clerk")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Register(ctx, "mallory", "pw", "Mallory", "", "not-an-email", "clerk")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	employee, err := svc.Register(ctx, "jdoe", "old-pass", "Jane", "", "jane@example.com", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, employee.ID, "new-pass"))

	_, err = svc.Authenticate(ctx, "jdoe", "old-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "jdoe", "new-pass")
	assert.NoError(t, err)
}

func TestUpdateAndRemoveEmployee(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	employee, err := svc.Register(ctx, "jdoe", "pw", "Jane", "", "jane@example.com", "clerk")
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.ID, "jdoe", "jane", "2 Main St", "jane@example.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Role)

	employees := svc.ListEmployees(ctx, "")
	require.Len(t, employees, 1)

	require.NoError(t, svc.RemoveEmployee(ctx, employee.ID))
	assert.ErrorIs(t, svc.RemoveEmployee(ctx, employee.ID), ErrNotFound)
}

func TestLoginRateLimit(t *testing.T) {
	svc := NewService(nil, rate.Every(time.Hour), 2)
	ctx := context.Background()

	_, err := svc.Register(ctx, "jdoe", "pw", "Jane", "", "jane@example.com", "admin")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "jdoe", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "jdoe", "pw")
	assert.ErrorIs(t, err, ErrRateLimited)
}
