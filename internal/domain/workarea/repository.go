package workarea

import (
	"context"
)

// WorkAreaRepository defines read access to work area reference data.
// The attendance core never writes work areas; they are owned by the
// administrative domain.
type WorkAreaRepository interface {
	// GetByID retrieves a single work area
	GetByID(ctx context.Context, id string) (WorkArea, error)

	// GetByIDs retrieves work areas preserving the order of ids. Unknown ids
	// are skipped. Callers that care about geofence precedence rely on this
	// ordering.
	GetByIDs(ctx context.Context, ids []string) ([]WorkArea, error)

	// List retrieves all work areas
	List(ctx context.Context) ([]WorkArea, error)
}
