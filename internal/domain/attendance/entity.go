package attendance

import (
	"time"
)

// Event is one attendance session for an employee at a work area. It is
// created open by clock-in, mutated by pause toggles, and closed exactly once
// by clock-out. At most one open Event may exist per employee; the repository
// enforces this with a conditional insert.
type Event struct {
	ID         string
	EmployeeID string
	WorkAreaID string
	DeviceID   *string
	ClockIn    time.Time
	// ClockOut is nil while the session is open.
	ClockOut *time.Time
	Status   Status
	// Pauses holds break intervals in the order they were taken. At most one
	// may be open (End == nil) at any time.
	Pauses          []Pause
	Note            *string
	PauseSkipReason *SkipReason
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO (joined on read)
	EmployeeName *string
	WorkAreaName *string
}

// Pause is a break interval inside a session. End is nil while the break is
// running; clock-out force-closes it. DeclaredMinutes is the duration the
// employee announced when starting the break; the actual interval still
// governs duration accounting.
type Pause struct {
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end"`
	DeclaredMinutes *int       `json:"declared_minutes,omitempty"`
}

type Status string

const (
	StatusClockedIn  Status = "clocked_in"
	StatusClockedOut Status = "clocked_out"
)

// SkipReason is the mandated-pause override reason recorded at clock-out
// when no completed pause exists on the session.
type SkipReason string

const (
	SkipReasonUrgentIntervention SkipReason = "01"
	SkipReasonInsufficientHours  SkipReason = "02"
	SkipReasonSiteRequest        SkipReason = "03"
	SkipReasonOther              SkipReason = "04" // requires an accompanying note
)

// Valid reports whether r is one of the enumerated reason codes.
func (r SkipReason) Valid() bool {
	switch r {
	case SkipReasonUrgentIntervention, SkipReasonInsufficientHours, SkipReasonSiteRequest, SkipReasonOther:
		return true
	}
	return false
}

// Description returns the human-readable label for the reason code.
func (r SkipReason) Description() string {
	switch r {
	case SkipReasonUrgentIntervention:
		return "urgent intervention"
	case SkipReasonInsufficientHours:
		return "insufficient hours"
	case SkipReasonSiteRequest:
		return "site request"
	case SkipReasonOther:
		return "other"
	}
	return "unknown"
}

// IsOpen reports whether the session has not been clocked out yet.
func (e Event) IsOpen() bool {
	return e.ClockOut == nil
}

// OpenPause returns the running break, or nil if none.
func (e *Event) OpenPause() *Pause {
	for i := range e.Pauses {
		if e.Pauses[i].End == nil {
			return &e.Pauses[i]
		}
	}
	return nil
}

// HasCompletedPause reports whether at least one break has both ends set.
func (e Event) HasCompletedPause() bool {
	return e.CompletedPauseCount() > 0
}

// CompletedPauseCount counts breaks with both ends set.
func (e Event) CompletedPauseCount() int {
	n := 0
	for _, p := range e.Pauses {
		if p.End != nil {
			n++
		}
	}
	return n
}
