package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestPresenceOf_NoOpenEvent(t *testing.T) {
	assert.Equal(t, PresenceOut, PresenceOf(nil))
}

func TestPresenceOf_ClosedEvent(t *testing.T) {
	now := time.Now()
	ev := Event{
		ClockIn:  now.Add(-8 * time.Hour),
		ClockOut: timePtr(now),
		Status:   StatusClockedOut,
	}
	assert.Equal(t, PresenceOut, PresenceOf(&ev))
}

func TestPresenceOf_OpenEventNoPause(t *testing.T) {
	ev := Event{
		ClockIn: time.Now().Add(-time.Hour),
		Status:  StatusClockedIn,
	}
	assert.Equal(t, PresenceWorking, PresenceOf(&ev))
}

func TestPresenceOf_OpenEventOpenPause(t *testing.T) {
	now := time.Now()
	ev := Event{
		ClockIn: now.Add(-time.Hour),
		Status:  StatusClockedIn,
		Pauses:  []Pause{{Start: now.Add(-10 * time.Minute)}},
	}
	assert.Equal(t, PresenceOnBreak, PresenceOf(&ev))
}

func TestPresenceOf_CompletedPauseMeansWorking(t *testing.T) {
	now := time.Now()
	ev := Event{
		ClockIn: now.Add(-2 * time.Hour),
		Status:  StatusClockedIn,
		Pauses: []Pause{
			{Start: now.Add(-90 * time.Minute), End: timePtr(now.Add(-75 * time.Minute))},
		},
	}
	assert.Equal(t, PresenceWorking, PresenceOf(&ev))
}

func TestOpenPause_ReturnsTrailingOpenInterval(t *testing.T) {
	now := time.Now()
	ev := Event{
		ClockIn: now.Add(-3 * time.Hour),
		Pauses: []Pause{
			{Start: now.Add(-2 * time.Hour), End: timePtr(now.Add(-100 * time.Minute))},
			{Start: now.Add(-30 * time.Minute)},
		},
	}

	open := ev.OpenPause()
	assert.NotNil(t, open)
	assert.Equal(t, now.Add(-30*time.Minute), open.Start)
	assert.Nil(t, open.End)

	assert.Equal(t, 1, ev.CompletedPauseCount())
	assert.True(t, ev.HasCompletedPause())
}

func TestSkipReason_Valid(t *testing.T) {
	for _, r := range []SkipReason{SkipReasonUrgentIntervention, SkipReasonInsufficientHours, SkipReasonSiteRequest, SkipReasonOther} {
		assert.True(t, r.Valid(), "reason %s", r)
	}
	assert.False(t, SkipReason("05").Valid())
	assert.False(t, SkipReason("").Valid())
}
