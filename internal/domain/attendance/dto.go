package attendance

import (
	"strconv"

	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	// AreaID is required when the employee clocks in without GPS; ignored
	// when the geofence resolves the area.
	AreaID    *string  `json:"area_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Note      *string  `json:"note"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "latitude and longitude must be supplied together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TogglePauseRequest struct {
	// DurationMinutes is the break length the employee intends to take.
	// Recorded on the pause as DeclaredMinutes; the actual length is still
	// measured by the toggle pair.
	DurationMinutes *int `json:"duration_minutes"`
}

func (r *TogglePauseRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Note            *string  `json:"note"`
	PauseSkipReason *string  `json:"pause_skip_reason"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if r.PauseSkipReason != nil {
		reason := SkipReason(*r.PauseSkipReason)
		if !reason.Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "pause_skip_reason",
				Message: "pause_skip_reason must be one of 01, 02, 03, 04",
			})
		} else if reason == SkipReasonOther && (r.Note == nil || validator.IsEmpty(*r.Note)) {
			errs = append(errs, validator.ValidationError{
				Field:   "note",
				Message: "note is required when pause_skip_reason is 04 (other)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEventRequest struct {
	ID              string   `json:"-"`
	ClockInTime     *string  `json:"clock_in_time"`  // RFC3339
	ClockOutTime    *string  `json:"clock_out_time"` // RFC3339
	Note            *string  `json:"note"`
	PauseSkipReason *string  `json:"pause_skip_reason"`
	Pauses          *[]Pause `json:"pauses"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.ClockInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.PauseSkipReason != nil && !SkipReason(*r.PauseSkipReason).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pause_skip_reason",
			Message: "pause_skip_reason must be one of 01, 02, 03, 04",
		})
	}

	if r.Pauses != nil {
		open := 0
		for i, p := range *r.Pauses {
			if p.End == nil {
				open++
			} else if p.End.Before(p.Start) {
				errs = append(errs, validator.ValidationError{
					Field:   "pauses",
					Message: "pause " + strconv.Itoa(i) + " ends before it starts",
				})
			}
		}
		if open > 1 {
			errs = append(errs, validator.ValidationError{
				Field:   "pauses",
				Message: "at most one pause may be open",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeID   *string
	EmployeeName *string
	StartDate    *string // YYYY-MM-DD
	EndDate      *string // YYYY-MM-DD
	Status       *string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{string(StatusClockedIn), string(StatusClockedOut)}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be clocked_in or clocked_out",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *MyFilter) Validate() error {
	lf := ListFilter{StartDate: f.StartDate, EndDate: f.EndDate}
	return lf.Validate()
}

// ========================================
// RESPONSES
// ========================================

type PauseResponse struct {
	Start           string  `json:"start"`
	End             *string `json:"end,omitempty"`
	DeclaredMinutes *int    `json:"declared_minutes,omitempty"`
}

type EventResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	WorkAreaID      string          `json:"work_area_id"`
	WorkAreaName    *string         `json:"work_area_name,omitempty"`
	ClockInTime     string          `json:"clock_in_time"`
	ClockOutTime    *string         `json:"clock_out_time,omitempty"`
	Status          string          `json:"status"`
	Presence        string          `json:"presence"`
	Pauses          []PauseResponse `json:"pauses"`
	NetMinutes      int             `json:"net_minutes"`
	NetTime         string          `json:"net_time"` // "H:MM"
	Note            *string         `json:"note,omitempty"`
	PauseSkipReason *string         `json:"pause_skip_reason,omitempty"`
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}
