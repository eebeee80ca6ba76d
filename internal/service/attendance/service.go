package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/employee"
	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/geo"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/metrics"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/sse"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type EventServiceImpl struct {
	attendance.EventRepository
	employee.EmployeeRepository
	workarea.WorkAreaRepository
	tx       attendance.Transactor
	hub      *sse.Hub
	cooldown time.Duration
}

func NewEventService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	workAreaRepo workarea.WorkAreaRepository,
	tx attendance.Transactor,
	hub *sse.Hub,
	cooldown time.Duration,
) attendance.EventService {
	return &EventServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		WorkAreaRepository: workAreaRepo,
		tx:                 tx,
		hub:                hub,
		cooldown:           cooldown,
	}
}

// claimsIdentity extracts the employee and device identity from the JWT.
func claimsIdentity(ctx context.Context) (employeeID string, deviceID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	deviceID, _ = claims["device_id"].(string)

	return employeeID, deviceID, nil
}

// ClockIn implements attendance.EventService.
func (s *EventServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.Command("clock_in", metrics.OutcomeRejected)
		return attendance.EventResponse{}, err
	}
	now := time.Now().UTC()

	employeeID, deviceID, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		metrics.Command("clock_in", metrics.OutcomeRejected)
		return attendance.EventResponse{}, employee.ErrEmployeeInactive
	}

	area, err := s.resolveArea(ctx, emp, req)
	if err != nil {
		metrics.Command("clock_in", metrics.OutcomeRejected)
		return attendance.EventResponse{}, err
	}

	// Re-entry cooldown against the most recent closed session.
	last, err := s.EventRepository.GetLastClosedByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get last closed session: %w", err)
	}
	if last != nil && last.ClockOut != nil {
		elapsed := now.Sub(*last.ClockOut)
		if elapsed < s.cooldown {
			remaining := int(math.Ceil((s.cooldown - elapsed).Minutes()))
			metrics.Command("clock_in", metrics.OutcomeRejected)
			return attendance.EventResponse{}, fmt.Errorf("%w: try again in %d minutes", attendance.ErrCooldownActive, remaining)
		}
	}

	event := attendance.Event{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: employeeID,
		WorkAreaID: area.ID,
		ClockIn:    now,
		Status:     attendance.StatusClockedIn,
		Pauses:     []attendance.Pause{},
		Note:       req.Note,
	}
	if deviceID != "" {
		event.DeviceID = &deviceID
	}

	// Conditional insert; a concurrent clock-in loses here, not later.
	created, err := s.EventRepository.CreateOpen(ctx, event)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			metrics.Command("clock_in", metrics.OutcomeRejected)
			return attendance.EventResponse{}, err
		}
		metrics.Command("clock_in", metrics.OutcomeError)
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	created.EmployeeName = &emp.FullName
	created.WorkAreaName = &area.Name

	metrics.Command("clock_in", metrics.OutcomeAccepted)
	metrics.OpenSessions.Inc()
	s.publishPresence(created)

	return mapEventToResponse(created, now), nil
}

// resolveArea picks the work area for a clock-in: through the geofence when
// GPS is required, from the request otherwise. Either way the area must be
// assigned to the employee.
func (s *EventServiceImpl) resolveArea(ctx context.Context, emp employee.Employee, req attendance.ClockInRequest) (workarea.WorkArea, error) {
	if emp.GPSRequired {
		if req.Latitude == nil || req.Longitude == nil {
			return workarea.WorkArea{}, attendance.ErrPositionRequired
		}

		candidates, err := s.WorkAreaRepository.GetByIDs(ctx, emp.WorkAreaIDs)
		if err != nil {
			return workarea.WorkArea{}, fmt.Errorf("failed to load assigned work areas: %w", err)
		}

		pos := geo.Position{Latitude: *req.Latitude, Longitude: *req.Longitude}
		matched := geo.LocateArea(pos, candidates)
		if matched == nil {
			metrics.GeofenceMisses.Inc()
			return workarea.WorkArea{}, attendance.ErrOutsideAllowedRadius
		}
		return *matched, nil
	}

	if req.AreaID == nil || *req.AreaID == "" {
		return workarea.WorkArea{}, attendance.ErrAreaNotAllowed
	}
	if !emp.IsAssignedTo(*req.AreaID) {
		return workarea.WorkArea{}, attendance.ErrAreaNotAllowed
	}

	area, err := s.WorkAreaRepository.GetByID(ctx, *req.AreaID)
	if err != nil {
		return workarea.WorkArea{}, err
	}
	return area, nil
}

// TogglePause implements attendance.EventService.
func (s *EventServiceImpl) TogglePause(ctx context.Context, req attendance.TogglePauseRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.Command("toggle_pause", metrics.OutcomeRejected)
		return attendance.EventResponse{}, err
	}
	now := time.Now().UTC()

	employeeID, _, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	var open *attendance.Event
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		open, err = s.EventRepository.GetOpenByEmployee(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get open session: %w", err)
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		if pause := open.OpenPause(); pause != nil {
			// Second toggle while on break ends it.
			end := now
			pause.End = &end
		} else {
			// Starting a break requires the area to define an allowance.
			area, err := s.WorkAreaRepository.GetByID(txCtx, open.WorkAreaID)
			if err != nil {
				return err
			}
			if !area.RequiresPause() {
				return attendance.ErrPauseNotConfigured
			}
			open.Pauses = append(open.Pauses, attendance.Pause{Start: now, DeclaredMinutes: req.DurationMinutes})
		}

		if err := s.EventRepository.Update(txCtx, *open); err != nil {
			return fmt.Errorf("failed to update attendance event: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrNotClockedIn) || errors.Is(err, attendance.ErrPauseNotConfigured) {
			metrics.Command("toggle_pause", metrics.OutcomeRejected)
		} else {
			metrics.Command("toggle_pause", metrics.OutcomeError)
		}
		return attendance.EventResponse{}, err
	}

	metrics.Command("toggle_pause", metrics.OutcomeAccepted)
	s.publishPresence(*open)

	return mapEventToResponse(*open, now), nil
}

// ClockOut implements attendance.EventService.
func (s *EventServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		metrics.Command("clock_out", metrics.OutcomeRejected)
		return attendance.EventResponse{}, err
	}
	now := time.Now().UTC()

	employeeID, _, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	var open *attendance.Event
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		open, err = s.EventRepository.GetOpenByEmployee(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get open session: %w", err)
		}
		if open == nil {
			return attendance.ErrNotClockedIn
		}

		area, err := s.WorkAreaRepository.GetByID(txCtx, open.WorkAreaID)
		if err != nil {
			return err
		}

		// A mandated pause with no completed interval needs an explicit
		// override reason. The open pause does not count: it has no end yet
		// when the guard runs.
		if area.RequiresPause() && !open.HasCompletedPause() {
			if req.PauseSkipReason == nil {
				return missingSkipReason(area)
			}
			reason := attendance.SkipReason(*req.PauseSkipReason)
			open.PauseSkipReason = &reason
		}

		// Never leave a pause open on a closed session.
		for i := range open.Pauses {
			if open.Pauses[i].End == nil {
				end := now
				open.Pauses[i].End = &end
			}
		}

		open.ClockOut = &now
		open.Status = attendance.StatusClockedOut
		if req.Note != nil {
			open.Note = req.Note
		}

		if err := s.EventRepository.Update(txCtx, *open); err != nil {
			return fmt.Errorf("failed to update attendance event: %w", err)
		}
		return nil
	})
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.Is(err, attendance.ErrNotClockedIn) || errors.As(err, &verrs) {
			metrics.Command("clock_out", metrics.OutcomeRejected)
		} else {
			metrics.Command("clock_out", metrics.OutcomeError)
		}
		return attendance.EventResponse{}, err
	}

	metrics.Command("clock_out", metrics.OutcomeAccepted)
	metrics.OpenSessions.Dec()
	s.publishPresence(*open)

	return mapEventToResponse(*open, now), nil
}

func missingSkipReason(area workarea.WorkArea) error {
	return validationError("pause_skip_reason",
		fmt.Sprintf("area %q mandates a %d minute pause; supply a pause_skip_reason (01-04) to clock out without one", area.Name, *area.PauseMinutes))
}

// GetMyAttendance implements attendance.EventService.
func (s *EventServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	employeeID, _, err := claimsIdentity(ctx)
	if err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	events, total, err := s.EventRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return buildListResponse(events, total, filter.Page, filter.Limit), nil
}

// ListEvents implements attendance.EventService.
func (s *EventServiceImpl) ListEvents(ctx context.Context, filter attendance.ListFilter) (attendance.ListEventsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListEventsResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	events, total, err := s.EventRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListEventsResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	return buildListResponse(events, total, filter.Page, filter.Limit), nil
}

// GetEvent implements attendance.EventService.
func (s *EventServiceImpl) GetEvent(ctx context.Context, id string) (attendance.EventResponse, error) {
	event, err := s.EventRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	return mapEventToResponse(event, time.Now().UTC()), nil
}

// UpdateEvent implements attendance.EventService. Admin correction of
// recorded data; derived fields are recomputed from the stored event on read,
// so only the raw fields are touched here.
func (s *EventServiceImpl) UpdateEvent(ctx context.Context, req attendance.UpdateEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		event, err := s.EventRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.ClockInTime != nil {
			t, _ := time.Parse(time.RFC3339, *req.ClockInTime)
			event.ClockIn = t.UTC()
		}
		if req.ClockOutTime != nil {
			t, _ := time.Parse(time.RFC3339, *req.ClockOutTime)
			utc := t.UTC()
			event.ClockOut = &utc
			event.Status = attendance.StatusClockedOut
		}
		if req.Note != nil {
			event.Note = req.Note
		}
		if req.PauseSkipReason != nil {
			reason := attendance.SkipReason(*req.PauseSkipReason)
			event.PauseSkipReason = &reason
		}
		if req.Pauses != nil {
			event.Pauses = *req.Pauses
		}

		if err := s.EventRepository.Update(txCtx, event); err != nil {
			return fmt.Errorf("failed to update attendance event: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.EventResponse{}, err
	}

	updated, err := s.EventRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get updated attendance event: %w", err)
	}

	return mapEventToResponse(updated, time.Now().UTC()), nil
}

func (s *EventServiceImpl) publishPresence(event attendance.Event) {
	s.hub.Publish(sse.Event{
		Topic: sse.TopicDashboard,
		Event: "presence",
		Data: map[string]interface{}{
			"employee_id":  event.EmployeeID,
			"work_area_id": event.WorkAreaID,
			"presence":     string(event.Presence()),
		},
	})
}
