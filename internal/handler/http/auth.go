package http

import (
	"encoding/json"
	"net/http"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/auth"
	"github.com/fieldtrack/timeclock-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	DeviceLogin(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

// DeviceLogin handles POST /auth/device-login
func (h *authHandlerImpl) DeviceLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.DeviceLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.authService.DeviceLogin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", result)
}
