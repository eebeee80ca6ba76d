package attendance

// Presence is the employee's attendance state. It is never stored; it is
// derived deterministically from the open event's fields so the invariants
// stay checkable: no open event means out, an open event with no running
// break means working, an open event with a running break means on break.
type Presence string

const (
	PresenceOut     Presence = "out"
	PresenceWorking Presence = "working"
	PresenceOnBreak Presence = "on_break"
)

// PresenceOf derives the state from the employee's current open event.
// Pass nil when the employee has no open event.
func PresenceOf(open *Event) Presence {
	if open == nil || !open.IsOpen() {
		return PresenceOut
	}
	if open.OpenPause() != nil {
		return PresenceOnBreak
	}
	return PresenceWorking
}

// Presence derives the state of this event in isolation.
func (e *Event) Presence() Presence {
	return PresenceOf(e)
}
