package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/fieldtrack/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workAreaRepository struct {
	db *database.DB
}

func NewWorkAreaRepository(db *database.DB) workarea.WorkAreaRepository {
	return &workAreaRepository{db: db}
}

const workAreaColumns = `id, name, latitude, longitude, radius_meters, pause_minutes, created_at, updated_at`

func scanWorkArea(row pgx.Row) (workarea.WorkArea, error) {
	var area workarea.WorkArea
	err := row.Scan(
		&area.ID, &area.Name, &area.Latitude, &area.Longitude,
		&area.RadiusMeters, &area.PauseMinutes, &area.CreatedAt, &area.UpdatedAt,
	)
	return area, err
}

// GetByID implements workarea.WorkAreaRepository.
func (r *workAreaRepository) GetByID(ctx context.Context, id string) (workarea.WorkArea, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workAreaColumns + ` FROM work_areas WHERE id = $1`

	area, err := scanWorkArea(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workarea.WorkArea{}, workarea.ErrWorkAreaNotFound
		}
		return workarea.WorkArea{}, fmt.Errorf("failed to get work area by ID: %w", err)
	}

	return area, nil
}

// GetByIDs implements workarea.WorkAreaRepository. The result preserves the
// order of ids; the geofence relies on it for precedence.
func (r *workAreaRepository) GetByIDs(ctx context.Context, ids []string) ([]workarea.WorkArea, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workAreaColumns + ` FROM work_areas WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query work areas: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]workarea.WorkArea, len(ids))
	for rows.Next() {
		area, err := scanWorkArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work area: %w", err)
		}
		byID[area.ID] = area
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work areas: %w", err)
	}

	areas := make([]workarea.WorkArea, 0, len(ids))
	for _, id := range ids {
		if area, ok := byID[id]; ok {
			areas = append(areas, area)
		}
	}

	return areas, nil
}

// List implements workarea.WorkAreaRepository.
func (r *workAreaRepository) List(ctx context.Context) ([]workarea.WorkArea, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workAreaColumns + ` FROM work_areas ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work areas: %w", err)
	}
	defer rows.Close()

	var areas []workarea.WorkArea
	for rows.Next() {
		area, err := scanWorkArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work area: %w", err)
		}
		areas = append(areas, area)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work areas: %w", err)
	}

	return areas, nil
}
