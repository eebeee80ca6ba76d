package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/auth"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses so handlers stay thin.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		StateConflict(w, "An attendance session is already open")
	case errors.Is(err, attendance.ErrNotClockedIn):
		StateConflict(w, "No open attendance session")
	case errors.Is(err, attendance.ErrCooldownActive):
		StateConflict(w, err.Error())
	case errors.Is(err, attendance.ErrPauseNotConfigured):
		StateConflict(w, "Pauses are not configured for this work area")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		GeofenceMiss(w, "Position is outside every assigned work area")
	case errors.Is(err, attendance.ErrPositionRequired):
		BadRequest(w, "A GPS position is required to clock in", nil)
	case errors.Is(err, attendance.ErrAreaNotAllowed):
		Forbidden(w, "Work area is not assigned to this employee")
	case errors.Is(err, attendance.ErrEventNotFound):
		ReferenceMissing(w, "Attendance event not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		ReferenceMissing(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, workarea.ErrWorkAreaNotFound):
		ReferenceMissing(w, "Work area not found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid employee code or PIN")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
