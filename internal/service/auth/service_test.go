package auth

import (
	"context"
	"testing"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/auth"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func newService(t *testing.T, emp employee.Employee) auth.AuthService {
	t.Helper()
	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}}
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "12h"))
}

func testEmployee(t *testing.T, pin string) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	return employee.Employee{
		ID:           "emp-1",
		FullName:     "Ada Example",
		EmployeeCode: "1234-5678",
		PINHash:      string(hash),
		Role:         employee.RoleEmployee,
		DeviceIDs:    []string{"device-a"},
		Status:       employee.StatusActive,
	}
}

func TestDeviceLogin_Success(t *testing.T) {
	svc := newService(t, testEmployee(t, "4812"))

	resp, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "1234-5678",
		PIN:          "4812",
		DeviceID:     "device-a",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "employee", resp.Role)
	assert.Positive(t, resp.ExpiresAt)
}

func TestDeviceLogin_WrongPIN(t *testing.T) {
	svc := newService(t, testEmployee(t, "4812"))

	_, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "1234-5678",
		PIN:          "0000",
		DeviceID:     "device-a",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestDeviceLogin_UnknownCodeSameError(t *testing.T) {
	svc := newService(t, testEmployee(t, "4812"))

	_, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "9999-9999",
		PIN:          "4812",
		DeviceID:     "device-a",
	})
	// Identical to a wrong PIN so probing for valid codes learns nothing.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestDeviceLogin_InactiveEmployee(t *testing.T) {
	emp := testEmployee(t, "4812")
	emp.Status = employee.StatusInactive
	svc := newService(t, emp)

	_, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "1234-5678",
		PIN:          "4812",
		DeviceID:     "device-a",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestDeviceLogin_OverDeviceCapStillSucceeds(t *testing.T) {
	emp := testEmployee(t, "4812")
	emp.DeviceIDs = []string{"device-a", "device-b"}
	svc := newService(t, emp)

	resp, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "1234-5678",
		PIN:          "4812",
		DeviceID:     "device-new",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestDeviceLogin_BadRequest(t *testing.T) {
	svc := newService(t, testEmployee(t, "4812"))

	_, err := svc.DeviceLogin(context.Background(), auth.DeviceLoginRequest{
		EmployeeCode: "not-a-code",
		PIN:          "",
		DeviceID:     "",
	})
	assert.Error(t, err)
}
