package attendance

import (
	"math"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/validator"
)

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func validationError(field, message string) error {
	return validator.ValidationErrors{{Field: field, Message: message}}
}

// mapEventToResponse converts an Event entity to EventResponse.
func mapEventToResponse(event attendance.Event, asOf time.Time) attendance.EventResponse {
	pauses := make([]attendance.PauseResponse, 0, len(event.Pauses))
	for _, p := range event.Pauses {
		pauses = append(pauses, attendance.PauseResponse{
			Start:           p.Start.UTC().Format(time.RFC3339),
			End:             timePtrToString(p.End),
			DeclaredMinutes: p.DeclaredMinutes,
		})
	}

	var reason *string
	if event.PauseSkipReason != nil {
		s := string(*event.PauseSkipReason)
		reason = &s
	}

	netMinutes := event.NetMinutes(asOf)

	return attendance.EventResponse{
		ID:              event.ID,
		EmployeeID:      event.EmployeeID,
		EmployeeName:    event.EmployeeName,
		WorkAreaID:      event.WorkAreaID,
		WorkAreaName:    event.WorkAreaName,
		ClockInTime:     event.ClockIn.UTC().Format(time.RFC3339),
		ClockOutTime:    timePtrToString(event.ClockOut),
		Status:          string(event.Status),
		Presence:        string(event.Presence()),
		Pauses:          pauses,
		NetMinutes:      netMinutes,
		NetTime:         attendance.FormatMinutes(netMinutes),
		Note:            event.Note,
		PauseSkipReason: reason,
	}
}

func buildListResponse(events []attendance.Event, total int64, page, limit int) attendance.ListEventsResponse {
	now := time.Now().UTC()
	responses := make([]attendance.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, mapEventToResponse(event, now))
	}

	return attendance.ListEventsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Events:     responses,
	}
}
