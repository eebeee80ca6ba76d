package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/auth"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// DeviceLogin implements auth.AuthService.
func (s *AuthServiceImpl) DeviceLogin(ctx context.Context, req auth.DeviceLoginRequest) (auth.DeviceLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.DeviceLoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Same error as a wrong PIN; do not leak which codes exist.
			return auth.DeviceLoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.DeviceLoginResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	if emp.Status != employee.StatusActive {
		return auth.DeviceLoginResponse{}, employee.ErrEmployeeInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)); err != nil {
		return auth.DeviceLoginResponse{}, auth.ErrInvalidCredentials
	}

	// The device cap is a product policy reported, not enforced: an
	// unregistered device on a full roster logs a warning and proceeds.
	if !emp.HasDevice(req.DeviceID) && len(emp.DeviceIDs) >= employee.MaxRegisteredDevices {
		slog.Warn("Login from unregistered device over the device cap",
			"employee_id", emp.ID,
			"device_id", req.DeviceID,
			"registered_devices", len(emp.DeviceIDs),
		)
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.ID, req.DeviceID, string(emp.Role))
	if err != nil {
		return auth.DeviceLoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.DeviceLoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		EmployeeID:  emp.ID,
		Role:        string(emp.Role),
	}, nil
}
