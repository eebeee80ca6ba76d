package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func TestNetMinutes_FullShiftWithPause(t *testing.T) {
	// 8-hour shift with a 15-minute break: 480 - 15 = 465.
	ev := Event{
		ClockIn:  base,
		ClockOut: timePtr(base.Add(8 * time.Hour)),
		Pauses: []Pause{
			{Start: base.Add(4 * time.Hour), End: timePtr(base.Add(4*time.Hour + 15*time.Minute))},
		},
	}
	assert.Equal(t, 465, ev.NetMinutes(base.Add(9*time.Hour)))
}

func TestNetMinutes_OpenSessionCountsLive(t *testing.T) {
	ev := Event{ClockIn: base}
	assert.Equal(t, 90, ev.NetMinutes(base.Add(90*time.Minute)))
}

func TestNetMinutes_OpenPauseCountsUpToAsOf(t *testing.T) {
	ev := Event{
		ClockIn: base,
		Pauses:  []Pause{{Start: base.Add(time.Hour)}},
	}
	// 2h elapsed, pause running for the last hour.
	assert.Equal(t, 60, ev.NetMinutes(base.Add(2*time.Hour)))
}

func TestNetMinutes_NeverNegative(t *testing.T) {
	// Pause longer than the session (clock skew) clamps to zero.
	ev := Event{
		ClockIn:  base,
		ClockOut: timePtr(base.Add(10 * time.Minute)),
		Pauses: []Pause{
			{Start: base, End: timePtr(base.Add(30 * time.Minute))},
		},
	}
	assert.Equal(t, 0, ev.NetMinutes(base.Add(time.Hour)))
}

func TestNetMinutes_MultiplePauses(t *testing.T) {
	ev := Event{
		ClockIn:  base,
		ClockOut: timePtr(base.Add(8 * time.Hour)),
		Pauses: []Pause{
			{Start: base.Add(2 * time.Hour), End: timePtr(base.Add(2*time.Hour + 20*time.Minute))},
			{Start: base.Add(6 * time.Hour), End: timePtr(base.Add(6*time.Hour + 10*time.Minute))},
		},
	}
	assert.Equal(t, 450, ev.NetMinutes(base.Add(9*time.Hour)))
}

func TestNetDuration_MonotonicInClockOut(t *testing.T) {
	pauses := []Pause{
		{Start: base.Add(time.Hour), End: timePtr(base.Add(time.Hour + 15*time.Minute))},
	}
	prev := time.Duration(-1)
	for h := 2; h <= 10; h++ {
		ev := Event{ClockIn: base, ClockOut: timePtr(base.Add(time.Duration(h) * time.Hour)), Pauses: pauses}
		d := ev.NetDuration(base.Add(24 * time.Hour))
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestNetDuration_MonotonicInPauseLength(t *testing.T) {
	prev := time.Duration(1 << 62)
	for m := 0; m <= 120; m += 15 {
		ev := Event{
			ClockIn:  base,
			ClockOut: timePtr(base.Add(8 * time.Hour)),
			Pauses: []Pause{
				{Start: base.Add(time.Hour), End: timePtr(base.Add(time.Hour + time.Duration(m)*time.Minute))},
			},
		}
		d := ev.NetDuration(base.Add(24 * time.Hour))
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
}

func TestNetMinutes_RoundsToNearestMinute(t *testing.T) {
	ev := Event{
		ClockIn:  base,
		ClockOut: timePtr(base.Add(10*time.Minute + 29*time.Second)),
	}
	assert.Equal(t, 10, ev.NetMinutes(base.Add(time.Hour)))

	ev.ClockOut = timePtr(base.Add(10*time.Minute + 31*time.Second))
	assert.Equal(t, 11, ev.NetMinutes(base.Add(time.Hour)))
}

func TestTotalNetMinutes_NoCompoundedRounding(t *testing.T) {
	// Three sessions of 10m20s each: per-session rounding would give 30,
	// full-precision accumulation gives 31 (31m00s).
	var events []Event
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		events = append(events, Event{
			ClockIn:  start,
			ClockOut: timePtr(start.Add(10*time.Minute + 20*time.Second)),
		})
	}
	assert.Equal(t, 31, TotalNetMinutes(events, base.Add(24*time.Hour)))
}

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{60, "1:00"},
		{465, "7:45"},
		{600, "10:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatMinutes(c.minutes))
	}
}
