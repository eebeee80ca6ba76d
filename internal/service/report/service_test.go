package report

import (
	"context"
	"testing"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/report"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========================================
// FAKES
// ========================================

type fakeEventRepo struct {
	events []attendance.Event
}

func (r *fakeEventRepo) CreateOpen(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	return event, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	return attendance.Event{}, attendance.ErrEventNotFound
}

func (r *fakeEventRepo) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) GetLastClosedByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event attendance.Event) error { return nil }

func (r *fakeEventRepo) ListByClockInWindow(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range r.events {
		if !e.ClockIn.Before(start) && !e.ClockIn.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListOpen(ctx context.Context) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, e := range r.events {
		if e.ClockOut == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]attendance.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Event, int64, error) {
	return r.events, int64(len(r.events)), nil
}

func (r *fakeEventRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyFilter) ([]attendance.Event, int64, error) {
	return nil, 0, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return r.employees, nil
}

type fakeWorkAreaRepo struct {
	areas []workarea.WorkArea
}

func (r *fakeWorkAreaRepo) GetByID(ctx context.Context, id string) (workarea.WorkArea, error) {
	for _, a := range r.areas {
		if a.ID == id {
			return a, nil
		}
	}
	return workarea.WorkArea{}, workarea.ErrWorkAreaNotFound
}

func (r *fakeWorkAreaRepo) GetByIDs(ctx context.Context, ids []string) ([]workarea.WorkArea, error) {
	return r.areas, nil
}

func (r *fakeWorkAreaRepo) List(ctx context.Context) ([]workarea.WorkArea, error) {
	return r.areas, nil
}

// ========================================
// FIXTURES
// ========================================

const (
	aliceID = "emp-alice"
	bobID   = "emp-bob"
	areaID  = "area-1"
)

func timePtr(t time.Time) *time.Time { return &t }

func roster() []employee.Employee {
	return []employee.Employee{
		{ID: bobID, FullName: "Bob Stone", Status: employee.StatusActive},
		{ID: aliceID, FullName: "alice Reed", Status: employee.StatusActive},
	}
}

func areas() []workarea.WorkArea {
	return []workarea.WorkArea{{ID: areaID, Name: "Depot"}}
}

func closedEvent(id, employeeID string, clockIn time.Time, d time.Duration) attendance.Event {
	out := clockIn.Add(d)
	return attendance.Event{
		ID:         id,
		EmployeeID: employeeID,
		WorkAreaID: areaID,
		ClockIn:    clockIn,
		ClockOut:   &out,
		Status:     attendance.StatusClockedOut,
	}
}

func newService(events ...attendance.Event) report.ReportService {
	return NewReportService(
		&fakeEventRepo{events: events},
		&fakeEmployeeRepo{employees: roster()},
		&fakeWorkAreaRepo{areas: areas()},
	)
}

// ========================================
// HOURS REPORT
// ========================================

func TestHoursReport_WindowBoundsInclusive(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	svc := newService(
		closedEvent("e-midnight", aliceID, day, 4*time.Hour),
		closedEvent("e-last-ms", aliceID, day.Add(24*time.Hour-time.Millisecond), time.Hour),
		closedEvent("e-before", aliceID, day.Add(-time.Second), time.Hour),
		closedEvent("e-next-day", aliceID, day.Add(24*time.Hour), time.Hour),
	)

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	ids := []string{resp.Rows[0].EventID, resp.Rows[1].EventID}
	assert.Contains(t, ids, "e-midnight")
	assert.Contains(t, ids, "e-last-ms")
}

func TestHoursReport_SessionCrossingMidnightCountedWhole(t *testing.T) {
	// Clock in 23:00 on the 10th, out 07:00 on the 11th. Selected by
	// clock-in, the full 8 hours land on the 10th.
	clockIn := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	svc := newService(closedEvent("e-night", aliceID, clockIn, 8*time.Hour))

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	require.NotNil(t, resp.Rows[0].NetMinutes)
	assert.Equal(t, 480, *resp.Rows[0].NetMinutes)
	assert.Equal(t, "8:00", resp.Rows[0].NetTime)
	assert.Equal(t, "2025-03-10", resp.Rows[0].Date)
}

func TestHoursReport_DanglingReferencesSkipped(t *testing.T) {
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	ghost := closedEvent("e-ghost-emp", "emp-unknown", day, time.Hour)
	lostArea := closedEvent("e-ghost-area", aliceID, day.Add(time.Hour), time.Hour)
	lostArea.WorkAreaID = "area-unknown"

	svc := newService(
		closedEvent("e-good", aliceID, day, 2*time.Hour),
		ghost,
		lostArea,
	)

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "e-good", resp.Rows[0].EventID)
}

func TestHoursReport_OrderedByNameThenClockIn(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	svc := newService(
		closedEvent("e-bob", bobID, day.Add(6*time.Hour), time.Hour),
		closedEvent("e-alice-late", aliceID, day.Add(13*time.Hour), time.Hour),
		closedEvent("e-alice-early", aliceID, day.Add(8*time.Hour), time.Hour),
	)

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	// "alice Reed" sorts before "Bob Stone" case-insensitively, despite the
	// lowercase initial.
	assert.Equal(t, "e-alice-early", resp.Rows[0].EventID)
	assert.Equal(t, "e-alice-late", resp.Rows[1].EventID)
	assert.Equal(t, "e-bob", resp.Rows[2].EventID)
}

func TestHoursReport_OpenSessionInProgress(t *testing.T) {
	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	open := attendance.Event{
		ID:         "e-open",
		EmployeeID: aliceID,
		WorkAreaID: areaID,
		ClockIn:    day,
		Status:     attendance.StatusClockedIn,
	}

	svc := newService(open, closedEvent("e-closed", aliceID, day.Add(-24*time.Hour), 3*time.Hour))

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-09",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 2)
	var openRow *report.Row
	for i := range resp.Rows {
		if resp.Rows[i].EventID == "e-open" {
			openRow = &resp.Rows[i]
		}
	}
	require.NotNil(t, openRow)
	assert.True(t, openRow.InProgress)
	assert.Nil(t, openRow.NetMinutes)
	assert.Equal(t, "in progress", openRow.NetTime)

	// The total sums closed sessions only; the open one is counted apart.
	require.Len(t, resp.Totals, 1)
	assert.Equal(t, 180, resp.Totals[0].NetMinutes)
	assert.Equal(t, 1, resp.Totals[0].OpenSessions)
}

func TestHoursReport_PausesReduceNetTime(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	event := closedEvent("e-paused", aliceID, clockIn, 8*time.Hour)
	pauseEnd := clockIn.Add(4*time.Hour + 30*time.Minute)
	event.Pauses = []attendance.Pause{
		{Start: clockIn.Add(4 * time.Hour), End: timePtr(pauseEnd)},
	}

	svc := newService(event)

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	require.NotNil(t, resp.Rows[0].NetMinutes)
	assert.Equal(t, 450, *resp.Rows[0].NetMinutes)
	assert.Equal(t, "7:30", resp.Rows[0].NetTime)
}

func TestHoursReport_MultiplePausesFlagged(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	event := closedEvent("e-anomaly", aliceID, clockIn, 8*time.Hour)
	end1 := clockIn.Add(2*time.Hour + 15*time.Minute)
	end2 := clockIn.Add(6*time.Hour + 15*time.Minute)
	event.Pauses = []attendance.Pause{
		{Start: clockIn.Add(2 * time.Hour), End: timePtr(end1)},
		{Start: clockIn.Add(6 * time.Hour), End: timePtr(end2)},
	}

	svc := newService(event)

	resp, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-10",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.True(t, resp.Rows[0].PauseAnomaly)
}

func TestHoursReport_InvalidRange(t *testing.T) {
	svc := newService()

	_, err := svc.HoursReport(context.Background(), report.HoursReportRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-09",
	})
	assert.Error(t, err)
}

// ========================================
// LIVE DASHBOARD
// ========================================

func TestLiveDashboard_PresenceCounts(t *testing.T) {
	now := time.Now().UTC()

	working := attendance.Event{
		ID:         "e-working",
		EmployeeID: aliceID,
		WorkAreaID: areaID,
		ClockIn:    now.Add(-2 * time.Hour),
		Status:     attendance.StatusClockedIn,
	}
	onBreak := attendance.Event{
		ID:         "e-break",
		EmployeeID: bobID,
		WorkAreaID: areaID,
		ClockIn:    now.Add(-3 * time.Hour),
		Status:     attendance.StatusClockedIn,
		Pauses:     []attendance.Pause{{Start: now.Add(-10 * time.Minute)}},
	}

	svc := newService(working, onBreak)

	resp, err := svc.LiveDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalWorking)
	assert.Equal(t, 1, resp.TotalOnBreak)
	assert.Equal(t, 2, resp.OpenSessionsNum)
	require.Len(t, resp.Areas, 1)
	assert.Equal(t, 1, resp.Areas[0].Working)
	assert.Equal(t, 1, resp.Areas[0].OnBreak)
	assert.Positive(t, resp.LiveNetMinutes)
}
