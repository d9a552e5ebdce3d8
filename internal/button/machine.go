// Package button implements the power-button state machine: a debounced
// edge/duration detector distinguishing short press (toggle power) from long
// press (enter maintenance mode). Pure logic with NO external dependencies —
// callers feed raw samples and the current time from a polling loop; nothing
// here sleeps or reads hardware.
package button

import "time"

// State is the machine's current position in a press-release cycle.
type State string

const (
	StateIdle                   State = "IDLE"
	StateDebouncingPress        State = "DEBOUNCING_PRESS"
	StatePressed                State = "PRESSED"
	StateLongPressActive        State = "LONG_PRESS_ACTIVE"
	StateDebouncingShortRelease State = "DEBOUNCING_SHORT_RELEASE"
	StateDebouncingLongRelease  State = "DEBOUNCING_LONG_RELEASE"
)

// EventType identifies the outcome of a press-release cycle.
type EventType string

const (
	EventTogglePower      EventType = "TOGGLE_POWER"
	EventEnterMaintenance EventType = "ENTER_MAINTENANCE"
)

// Event is emitted at most once per physical press-release cycle.
type Event struct {
	Timestamp time.Time
	Type      EventType
	// Held is how long the button had been down when the event fired,
	// measured from the initial press edge.
	Held time.Duration
}

// Machine tracks one button. Transitions happen only on raw input edges and
// elapsed-time thresholds; no transition can fail, and noisy input degrades
// to repeated bounce rejections rather than a stuck state.
type Machine struct {
	debounce  time.Duration
	longPress time.Duration

	state State
	// since marks when the active debounce window opened.
	since time.Time
	// pressedAt marks the initial press edge of the current cycle.
	pressedAt time.Time
}

// NewMachine creates a Machine with the given debounce delay and long-press
// threshold. The configuration loader guarantees debounce < longPress.
func NewMachine(debounce, longPress time.Duration) *Machine {
	return &Machine{
		debounce:  debounce,
		longPress: longPress,
		state:     StateIdle,
	}
}

// Process consumes one sample of the logical button level (pressed = active)
// at the given time and returns at most one event.
//
// Exactly one of TOGGLE_POWER or ENTER_MAINTENANCE fires per press-release
// cycle, never both: a toggle fires only when a short release survives its
// debounce window, a maintenance trigger fires the moment the hold crosses
// the long-press threshold, and a long-press release is swallowed.
func (m *Machine) Process(pressed bool, now time.Time) *Event {
	switch m.state {
	case StateIdle:
		if pressed {
			m.state = StateDebouncingPress
			m.since = now
		}

	case StateDebouncingPress:
		if !pressed {
			// Bounce rejected.
			m.state = StateIdle
			break
		}
		if now.Sub(m.since) >= m.debounce {
			m.state = StatePressed
			m.pressedAt = m.since
		}

	case StatePressed:
		if !pressed {
			m.state = StateDebouncingShortRelease
			m.since = now
			break
		}
		if now.Sub(m.pressedAt) >= m.longPress {
			m.state = StateLongPressActive
			return &Event{
				Timestamp: now,
				Type:      EventEnterMaintenance,
				Held:      now.Sub(m.pressedAt),
			}
		}

	case StateDebouncingShortRelease:
		if pressed {
			// Bounce rejected, no re-trigger.
			m.state = StatePressed
			break
		}
		if now.Sub(m.since) >= m.debounce {
			m.state = StateIdle
			return &Event{
				Timestamp: now,
				Type:      EventTogglePower,
				Held:      m.since.Sub(m.pressedAt),
			}
		}

	case StateLongPressActive:
		if !pressed {
			m.state = StateDebouncingLongRelease
			m.since = now
		}

	case StateDebouncingLongRelease:
		if pressed {
			// Bounce rejected.
			m.state = StateLongPressActive
			break
		}
		if now.Sub(m.since) >= m.debounce {
			// Long-press release is not a toggle.
			m.state = StateIdle
		}
	}

	return nil
}

// State returns the machine's current state.
func (m *Machine) State() State {
	return m.state
}
