package geo

import (
	"math"
	"time"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
)

// Position is a single GPS fix as reported by a device.
type Position struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	Timestamp      time.Time
}

// HaversineDistance returns the great-circle distance between two
// coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // mean Earth radius in meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// LocateArea returns the first candidate whose fence contains pos, in the
// given iteration order. A candidate matches when it has a center, a positive
// radius, and the haversine distance to pos is at most the radius (boundary
// inclusive). Returns nil when nothing matches. No proximity ranking is done;
// callers pass candidates in precedence order.
func LocateArea(pos Position, candidates []workarea.WorkArea) *workarea.WorkArea {
	for i := range candidates {
		area := &candidates[i]
		if !area.HasCenter() || area.RadiusMeters <= 0 {
			continue
		}
		distance := HaversineDistance(pos.Latitude, pos.Longitude, *area.Latitude, *area.Longitude)
		if distance <= float64(area.RadiusMeters) {
			return area
		}
	}
	return nil
}
