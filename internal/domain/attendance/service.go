package attendance

import (
	"context"
)

// EventService defines the attendance command surface. Employee and device
// identity come from the request context claims, never from the body.
type EventService interface {
	// ClockIn opens a session. The area is resolved through the geofence for
	// GPS-required employees, or taken from the request otherwise. Rejects
	// double clock-ins and clock-ins within the re-entry cooldown.
	ClockIn(ctx context.Context, req ClockInRequest) (EventResponse, error)

	// TogglePause starts a break on the open session, or ends the running one.
	TogglePause(ctx context.Context, req TogglePauseRequest) (EventResponse, error)

	// ClockOut closes the open session, force-closing any running break. When
	// the area mandates a pause and none was completed, a skip reason is
	// required.
	ClockOut(ctx context.Context, req ClockOutRequest) (EventResponse, error)

	// GetMyAttendance retrieves events for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyFilter) (ListEventsResponse, error)

	// ListEvents retrieves events with filters (admin)
	ListEvents(ctx context.Context, filter ListFilter) (ListEventsResponse, error)

	// GetEvent retrieves a single event by ID
	GetEvent(ctx context.Context, id string) (EventResponse, error)

	// UpdateEvent corrects a recorded event (admin), recomputing derived
	// fields on save
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
}
