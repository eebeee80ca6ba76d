package cron

import (
	"context"
	"testing"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[string]attendance.Event
}

func (r *fakeEventRepo) CreateOpen(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	return event, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return attendance.Event{}, attendance.ErrEventNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) GetLastClosedByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event attendance.Event) error {
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) ListByClockInWindow(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) ListOpen(ctx context.Context) ([]attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range r.events {
		if e.ClockOut == nil && e.ClockIn.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Event, int64, error) {
	return nil, 0, nil
}

func (r *fakeEventRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyFilter) ([]attendance.Event, int64, error) {
	return nil, 0, nil
}

func TestCloseStaleSessions(t *testing.T) {
	now := time.Now().UTC()
	pauseStart := now.Add(-18 * time.Hour)

	repo := &fakeEventRepo{events: map[string]attendance.Event{
		"stale": {
			ID:         "stale",
			EmployeeID: "emp-1",
			WorkAreaID: "area-1",
			ClockIn:    now.Add(-20 * time.Hour),
			Status:     attendance.StatusClockedIn,
			Pauses:     []attendance.Pause{{Start: pauseStart}},
		},
		"fresh": {
			ID:         "fresh",
			EmployeeID: "emp-2",
			WorkAreaID: "area-1",
			ClockIn:    now.Add(-2 * time.Hour),
			Status:     attendance.StatusClockedIn,
		},
	}}

	jobs := NewAttendanceJobs(repo, sse.NewHub(), 16*time.Hour)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))

	stale := repo.events["stale"]
	require.NotNil(t, stale.ClockOut)
	assert.Equal(t, attendance.StatusClockedOut, stale.Status)
	// Closed at clock-in + cap, not at sweep time.
	expected := stale.ClockIn.Add(16 * time.Hour)
	assert.True(t, stale.ClockOut.Equal(expected))
	require.NotNil(t, stale.Pauses[0].End)
	assert.True(t, stale.Pauses[0].End.Equal(expected))
	require.NotNil(t, stale.Note)

	fresh := repo.events["fresh"]
	assert.Nil(t, fresh.ClockOut)
	assert.Equal(t, attendance.StatusClockedIn, fresh.Status)
}

func TestCloseStaleSessions_PauseBegunAfterCap(t *testing.T) {
	now := time.Now().UTC()
	clockIn := now.Add(-20 * time.Hour)
	// The cap instant is clockIn+16h, four hours ago; the break began
	// only ten minutes ago, well after it.
	pauseStart := now.Add(-10 * time.Minute)

	repo := &fakeEventRepo{events: map[string]attendance.Event{
		"late-break": {
			ID:         "late-break",
			EmployeeID: "emp-1",
			WorkAreaID: "area-1",
			ClockIn:    clockIn,
			Status:     attendance.StatusClockedIn,
			Pauses:     []attendance.Pause{{Start: pauseStart}},
		},
	}}

	jobs := NewAttendanceJobs(repo, sse.NewHub(), 16*time.Hour)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))

	closed := repo.events["late-break"]
	require.NotNil(t, closed.ClockOut)
	require.NotNil(t, closed.Pauses[0].End)
	// The pause closes where it started, never before.
	assert.True(t, closed.Pauses[0].End.Equal(pauseStart))
	assert.False(t, closed.Pauses[0].End.Before(closed.Pauses[0].Start))
	// Net time stays at the cap; the zero-length pause cannot inflate it.
	assert.Equal(t, 16*60, closed.NetMinutes(now))
}
