package workarea

import (
	"time"
)

// WorkArea is a geofenced site employees clock in against. Latitude and
// Longitude may be absent for areas that only accept manual selection;
// RadiusMeters must be positive for the fence to be evaluated.
type WorkArea struct {
	ID           string
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
	// PauseMinutes is the mandated break length for shifts at this area.
	// Nil or zero means the area does not require a break.
	PauseMinutes *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCenter reports whether the area has a usable geographic center.
func (w WorkArea) HasCenter() bool {
	return w.Latitude != nil && w.Longitude != nil
}

// RequiresPause reports whether shifts at this area mandate a break.
func (w WorkArea) RequiresPause() bool {
	return w.PauseMinutes != nil && *w.PauseMinutes > 0
}
