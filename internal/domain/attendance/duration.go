package attendance

import (
	"fmt"
	"time"
)

// NetDuration returns the worked time of the session as of asOf: elapsed time
// from clock-in to clock-out (or asOf while open) minus every pause, with an
// open pause counted up to asOf. The result never goes negative; a session
// whose pause time exceeds its elapsed time (clock skew) reports zero.
// Accumulation stays at time.Duration precision; rounding to minutes happens
// only at display time.
func (e Event) NetDuration(asOf time.Time) time.Duration {
	end := asOf
	if e.ClockOut != nil {
		end = *e.ClockOut
	}

	total := end.Sub(e.ClockIn)
	for _, p := range e.Pauses {
		pauseEnd := asOf
		if p.End != nil {
			pauseEnd = *p.End
		}
		total -= pauseEnd.Sub(p.Start)
	}

	if total < 0 {
		return 0
	}
	return total
}

// NetMinutes returns the session's worked time rounded to the nearest whole
// minute.
func (e Event) NetMinutes(asOf time.Time) int {
	return int(e.NetDuration(asOf).Round(time.Minute) / time.Minute)
}

// TotalNetMinutes sums worked time across events at full precision and rounds
// once, so per-session rounding error does not compound over a period.
func TotalNetMinutes(events []Event, asOf time.Time) int {
	var total time.Duration
	for _, e := range events {
		total += e.NetDuration(asOf)
	}
	return int(total.Round(time.Minute) / time.Minute)
}

// FormatMinutes renders whole minutes as "H:MM" for payroll display.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
