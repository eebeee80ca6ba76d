package attendance

import "errors"

// Attendance domain errors
var (
	// State conflicts
	ErrAlreadyClockedIn = errors.New("you already have an open session")
	ErrNotClockedIn     = errors.New("you have no open session")
	ErrCooldownActive   = errors.New("too soon after your last clock-out")

	// Pause handling
	ErrPauseNotConfigured = errors.New("this work area does not define a pause allowance")

	// Geofence
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius of your assigned areas")
	ErrPositionRequired     = errors.New("a GPS position is required to clock in")

	// General errors
	ErrEventNotFound  = errors.New("attendance record not found")
	ErrAreaNotAllowed = errors.New("work area is not assigned to this employee")
)
