package geo

import (
	"testing"

	"github.com/fieldtrack/timeclock-backend-go/internal/domain/workarea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func area(id string, lat, lon float64, radius int) workarea.WorkArea {
	return workarea.WorkArea{
		ID:           id,
		Name:         id,
		Latitude:     ptr(lat),
		Longitude:    ptr(lon),
		RadiusMeters: radius,
	}
}

func TestHaversineDistance_KnownPoints(t *testing.T) {
	// Rome Termini to Colosseum, roughly 1.3 km.
	d := HaversineDistance(41.9010, 12.5011, 41.8902, 12.4922)
	assert.InDelta(t, 1400, d, 200)

	// Same point is zero.
	assert.Equal(t, 0.0, HaversineDistance(41.9, 12.5, 41.9, 12.5))
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	d1 := HaversineDistance(41.9, 12.5, 48.8566, 2.3522)
	d2 := HaversineDistance(48.8566, 2.3522, 41.9, 12.5)
	assert.InDelta(t, d1, d2, 1e-6)
}

func TestLocateArea_Match(t *testing.T) {
	// One degree of latitude is ~111 km, so 0.00045 degrees is ~50 m.
	site := area("site-a", 41.9000, 12.5000, 100)
	pos := Position{Latitude: 41.90045, Longitude: 12.5000}

	d := HaversineDistance(pos.Latitude, pos.Longitude, 41.9000, 12.5000)
	require.Less(t, d, 100.0)

	got := LocateArea(pos, []workarea.WorkArea{site})
	require.NotNil(t, got)
	assert.Equal(t, "site-a", got.ID)
}

func TestLocateArea_NoMatchOutsideRadius(t *testing.T) {
	site := area("site-a", 41.9000, 12.5000, 100)
	// ~200 m north of center.
	pos := Position{Latitude: 41.9018, Longitude: 12.5000}

	got := LocateArea(pos, []workarea.WorkArea{site})
	assert.Nil(t, got)
}

func TestLocateArea_BoundaryInclusive(t *testing.T) {
	center := area("site-a", 41.9000, 12.5000, 0)
	pos := Position{Latitude: 41.9009, Longitude: 12.5000}

	// Size the fence to the exact computed distance: a point at distance
	// == radius must match, radius - 1 must not.
	d := HaversineDistance(pos.Latitude, pos.Longitude, *center.Latitude, *center.Longitude)

	center.RadiusMeters = int(d) + 1
	require.NotNil(t, LocateArea(pos, []workarea.WorkArea{center}))

	center.RadiusMeters = int(d) - 1
	assert.Nil(t, LocateArea(pos, []workarea.WorkArea{center}))
}

func TestLocateArea_FirstMatchWins(t *testing.T) {
	first := area("first", 41.9000, 12.5000, 500)
	second := area("second", 41.9001, 12.5000, 500) // closer to pos than first
	pos := Position{Latitude: 41.9001, Longitude: 12.5000}

	got := LocateArea(pos, []workarea.WorkArea{first, second})
	require.NotNil(t, got)
	// Iteration order, not proximity, decides.
	assert.Equal(t, "first", got.ID)
}

func TestLocateArea_SkipsUnusableCandidates(t *testing.T) {
	noCenter := workarea.WorkArea{ID: "no-center", RadiusMeters: 100}
	zeroRadius := area("zero-radius", 41.9000, 12.5000, 0)
	usable := area("usable", 41.9000, 12.5000, 100)
	pos := Position{Latitude: 41.9000, Longitude: 12.5000}

	got := LocateArea(pos, []workarea.WorkArea{noCenter, zeroRadius, usable})
	require.NotNil(t, got)
	assert.Equal(t, "usable", got.ID)
}

func TestLocateArea_NoCandidates(t *testing.T) {
	assert.Nil(t, LocateArea(Position{Latitude: 41.9, Longitude: 12.5}, nil))
}
