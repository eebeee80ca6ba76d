package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for attendance events.
type EventRepository interface {
	// CreateOpen inserts a new open event conditioned on the employee having
	// no other open event, as a single atomic statement. Returns
	// ErrAlreadyClockedIn when the condition fails. This is the one
	// linearizability guarantee the core relies on.
	CreateOpen(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (Event, error)

	// GetOpenByEmployee retrieves the employee's open event, or nil
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Event, error)

	// GetLastClosedByEmployee retrieves the employee's most recently closed
	// event, or nil. Used for the re-entry cooldown.
	GetLastClosedByEmployee(ctx context.Context, employeeID string) (*Event, error)

	// Update persists pause list, clock-out fields and status of an event
	Update(ctx context.Context, event Event) error

	// ListByClockInWindow retrieves events whose clock-in falls within
	// [start, end], both inclusive, with employee and area names joined.
	ListByClockInWindow(ctx context.Context, start, end time.Time) ([]Event, error)

	// ListOpen retrieves all open events across the roster
	ListOpen(ctx context.Context) ([]Event, error)

	// ListOpenOlderThan retrieves open events clocked in before cutoff.
	// Used by the stale-session sweeper.
	ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]Event, error)

	// List retrieves events with filters and pagination (admin view)
	List(ctx context.Context, filter ListFilter) ([]Event, int64, error)

	// ListByEmployee retrieves events for one employee with pagination
	ListByEmployee(ctx context.Context, employeeID string, filter MyFilter) ([]Event, int64, error)
}

// Transactor runs fn atomically against the store. The read-modify-write
// command flows (pause toggle, clock-out, correction) run inside it so a
// concurrent command cannot interleave between the read and the write.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
