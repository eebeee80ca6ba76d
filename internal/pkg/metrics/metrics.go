// Package metrics exposes Prometheus metrics for the attendance service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timeclock"

// Command outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// CommandsTotal counts attendance commands by name and outcome.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commands_total",
		Help:      "Attendance commands processed, by command and outcome.",
	}, []string{"command", "outcome"})

	// OpenSessions tracks the number of currently open attendance sessions.
	OpenSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "open_sessions",
		Help:      "Number of currently open attendance sessions.",
	})

	// GeofenceMisses counts clock-in attempts rejected by the geofence.
	GeofenceMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geofence_misses_total",
		Help:      "Clock-in attempts outside every assigned area.",
	})

	// StaleSessionsClosed counts sessions closed by the sweeper.
	StaleSessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_sessions_closed_total",
		Help:      "Open sessions force-closed by the stale-session sweeper.",
	})
)

// Command records one command outcome.
func Command(command, outcome string) {
	CommandsTotal.WithLabelValues(command, outcome).Inc()
}
