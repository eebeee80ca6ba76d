package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	a.id, a.employee_id, a.work_area_id, a.device_id,
	a.clock_in, a.clock_out, a.status, a.pauses,
	a.note, a.pause_skip_reason, a.created_at, a.updated_at,
	e.full_name AS employee_name,
	w.name AS work_area_name`

const eventJoins = `
	FROM attendance_events a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN work_areas w ON w.id = a.work_area_id`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var event attendance.Event
	var pausesJSON []byte
	var reason *string

	err := row.Scan(
		&event.ID, &event.EmployeeID, &event.WorkAreaID, &event.DeviceID,
		&event.ClockIn, &event.ClockOut, &event.Status, &pausesJSON,
		&event.Note, &reason, &event.CreatedAt, &event.UpdatedAt,
		&event.EmployeeName, &event.WorkAreaName,
	)
	if err != nil {
		return attendance.Event{}, err
	}

	if len(pausesJSON) > 0 {
		if err := json.Unmarshal(pausesJSON, &event.Pauses); err != nil {
			return attendance.Event{}, fmt.Errorf("failed to decode pauses: %w", err)
		}
	}
	if reason != nil {
		r := attendance.SkipReason(*reason)
		event.PauseSkipReason = &r
	}

	return event, nil
}

func encodePauses(pauses []attendance.Pause) ([]byte, error) {
	if pauses == nil {
		pauses = []attendance.Pause{}
	}
	return json.Marshal(pauses)
}

// CreateOpen implements attendance.EventRepository. The insert is guarded by
// "no open event for this employee" in a single statement so two concurrent
// clock-ins cannot both succeed.
func (r *eventRepository) CreateOpen(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	pausesJSON, err := encodePauses(event.Pauses)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to encode pauses: %w", err)
	}

	query := `
		INSERT INTO attendance_events (
			id, employee_id, work_area_id, device_id, clock_in, status, pauses, note
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance_events
			WHERE employee_id = $2 AND clock_out IS NULL
		)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.WorkAreaID,
		event.DeviceID,
		event.ClockIn,
		event.Status,
		pausesJSON,
		event.Note,
	).Scan(&event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			// The guard filtered the insert: another open session exists.
			return attendance.Event{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return event, nil
}

// GetByID implements attendance.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + ` WHERE a.id = $1`

	event, err := scanEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event by ID: %w", err)
	}

	return event, nil
}

// GetOpenByEmployee implements attendance.EventRepository.
func (r *eventRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + `
		WHERE a.employee_id = $1 AND a.clock_out IS NULL
		ORDER BY a.clock_in DESC
		LIMIT 1`

	event, err := scanEvent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &event, nil
}

// GetLastClosedByEmployee implements attendance.EventRepository.
func (r *eventRepository) GetLastClosedByEmployee(ctx context.Context, employeeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + `
		WHERE a.employee_id = $1 AND a.clock_out IS NOT NULL
		ORDER BY a.clock_out DESC
		LIMIT 1`

	event, err := scanEvent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last closed session: %w", err)
	}

	return &event, nil
}

// Update implements attendance.EventRepository.
func (r *eventRepository) Update(ctx context.Context, event attendance.Event) error {
	q := GetQuerier(ctx, r.db)

	pausesJSON, err := encodePauses(event.Pauses)
	if err != nil {
		return fmt.Errorf("failed to encode pauses: %w", err)
	}

	var reason *string
	if event.PauseSkipReason != nil {
		s := string(*event.PauseSkipReason)
		reason = &s
	}

	query := `
		UPDATE attendance_events
		SET clock_in = $2,
			clock_out = $3,
			status = $4,
			pauses = $5,
			note = $6,
			pause_skip_reason = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		event.ID,
		event.ClockIn,
		event.ClockOut,
		event.Status,
		pausesJSON,
		event.Note,
		reason,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

// ListByClockInWindow implements attendance.EventRepository.
func (r *eventRepository) ListByClockInWindow(ctx context.Context, start, end time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + `
		WHERE a.clock_in >= $1 AND a.clock_in <= $2
		ORDER BY a.clock_in ASC`

	return r.queryEvents(ctx, q, query, start, end)
}

// ListOpen implements attendance.EventRepository.
func (r *eventRepository) ListOpen(ctx context.Context) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + `
		WHERE a.clock_out IS NULL
		ORDER BY a.clock_in ASC`

	return r.queryEvents(ctx, q, query)
}

// ListOpenOlderThan implements attendance.EventRepository.
func (r *eventRepository) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + eventColumns + eventJoins + `
		WHERE a.clock_out IS NULL AND a.clock_in < $1
		ORDER BY a.clock_in ASC`

	return r.queryEvents(ctx, q, query, cutoff)
}

func (r *eventRepository) queryEvents(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Event, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

// List implements attendance.EventRepository.
func (r *eventRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.clock_in >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.clock_in < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM attendance_events a LEFT JOIN employees e ON e.id = a.employee_id WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	orderByField := "a.clock_in"
	switch filter.SortBy {
	case "clock_out_time":
		orderByField = "a.clock_out"
	case "employee_name":
		orderByField = "e.full_name"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	selectQuery := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		eventColumns, eventJoins, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	events, err := r.queryEvents(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// ListByEmployee implements attendance.EventRepository.
func (r *eventRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.MyFilter) ([]attendance.Event, int64, error) {
	listFilter := attendance.ListFilter{
		EmployeeID: &employeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	return r.List(ctx, listFilter)
}
