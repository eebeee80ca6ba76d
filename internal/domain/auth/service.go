package auth

import (
	"context"
)

// AuthService issues device tokens for the attendance command surface.
type AuthService interface {
	// DeviceLogin verifies employee code + PIN and mints an access token
	// carrying employee_id, device_id and role claims.
	DeviceLogin(ctx context.Context, req DeviceLoginRequest) (DeviceLoginResponse, error)
}
