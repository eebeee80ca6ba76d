package report

import (
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/validator"
)

// Window is a closed day-granularity reporting interval. Start is the first
// instant of the first day, End the last millisecond of the last day. Events
// are selected by clock-in time only; a session running past End is included
// whole.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DayWindow builds the window spanning the given boundary dates:
// 00:00:00.000 of start through 23:59:59.999 of end.
func DayWindow(start, end time.Time) Window {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).
		Add(24*time.Hour - time.Millisecond)
	return Window{Start: s, End: e}
}

type HoursReportRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *HoursReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Row is one payroll-ready line of the hours report. Rows for open sessions
// carry InProgress=true and render "in progress" instead of a duration.
type Row struct {
	EventID      string  `json:"event_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	WorkAreaID   string  `json:"work_area_id"`
	WorkAreaName string  `json:"work_area_name"`
	Date         string  `json:"date"` // YYYY-MM-DD of clock-in
	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time,omitempty"`
	InProgress   bool    `json:"in_progress"`
	NetMinutes   *int    `json:"net_minutes,omitempty"`
	NetTime      string  `json:"net_time"` // "H:MM" or "in progress"
	// PauseAnomaly flags sessions with more than one completed pause. They
	// are reported, never rejected.
	PauseAnomaly    bool    `json:"pause_anomaly"`
	PauseSkipReason *string `json:"pause_skip_reason,omitempty"`
}

// EmployeeTotal is the per-employee sum over the window's closed sessions.
type EmployeeTotal struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	NetMinutes   int    `json:"net_minutes"`
	NetTime      string `json:"net_time"`
	OpenSessions int    `json:"open_sessions"`
}

type HoursReportResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Rows      []Row           `json:"rows"`
	Totals    []EmployeeTotal `json:"totals"`
}

// AreaPresence is the live head count for one area.
type AreaPresence struct {
	WorkAreaID   string `json:"work_area_id"`
	WorkAreaName string `json:"work_area_name"`
	Working      int    `json:"working"`
	OnBreak      int    `json:"on_break"`
}

type LiveDashboardResponse struct {
	AsOf            string         `json:"as_of"`
	Areas           []AreaPresence `json:"areas"`
	TotalWorking    int            `json:"total_working"`
	TotalOnBreak    int            `json:"total_on_break"`
	LiveNetMinutes  int            `json:"live_net_minutes"`
	LiveNetTime     string         `json:"live_net_time"`
	OpenSessionsNum int            `json:"open_sessions"`
}
