package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/metrics"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/sse"
)

const autoCloseNote = "auto-closed: session exceeded the maximum open duration"

type AttendanceJobs struct {
	eventRepo   attendance.EventRepository
	hub         *sse.Hub
	maxOpenTime time.Duration
}

func NewAttendanceJobs(eventRepo attendance.EventRepository, hub *sse.Hub, maxOpenTime time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		eventRepo:   eventRepo,
		hub:         hub,
		maxOpenTime: maxOpenTime,
	}
}

// Register wires the attendance jobs into the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler, interval time.Duration) {
	s.AddJob("close_stale_sessions", interval, j.CloseStaleSessions)
}

// CloseStaleSessions clocks out sessions left open longer than the
// configured cap. The session is closed at clock-in + cap, not at sweep
// time, so a forgotten clock-out does not inflate payroll totals; an open
// pause is force-closed at the same instant.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.maxOpenTime)

	stale, err := j.eventRepo.ListOpenOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	for _, event := range stale {
		closeAt := event.ClockIn.Add(j.maxOpenTime)

		for i := range event.Pauses {
			if event.Pauses[i].End == nil {
				end := closeAt
				// A pause begun after the cap instant closes where it
				// started; a pause must never end before it starts.
				if event.Pauses[i].Start.After(closeAt) {
					end = event.Pauses[i].Start
				}
				event.Pauses[i].End = &end
			}
		}

		event.ClockOut = &closeAt
		event.Status = attendance.StatusClockedOut
		note := autoCloseNote
		event.Note = &note

		if err := j.eventRepo.Update(ctx, event); err != nil {
			slog.Error("Failed to auto-close stale session", "event_id", event.ID, "error", err)
			continue
		}

		metrics.StaleSessionsClosed.Inc()
		metrics.OpenSessions.Dec()
		slog.Warn("Auto-closed stale session",
			"event_id", event.ID,
			"employee_id", event.EmployeeID,
			"clock_in", event.ClockIn,
			"closed_at", closeAt,
		)

		j.hub.Publish(sse.Event{
			Topic: sse.TopicDashboard,
			Event: "presence",
			Data: map[string]interface{}{
				"employee_id":  event.EmployeeID,
				"work_area_id": event.WorkAreaID,
				"presence":     string(attendance.PresenceOut),
			},
		})
	}

	return nil
}
