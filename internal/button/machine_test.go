package button

import (
	"testing"
	"time"
)

const (
	debounce  = 50 * time.Millisecond
	longPress = 3000 * time.Millisecond
	pollStep  = 10 * time.Millisecond
)

var start = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// poll feeds the machine a constant level over [from, to) at the poll cadence
// and collects every emitted event.
func poll(m *Machine, pressed bool, from, to time.Duration) []Event {
	var events []Event
	for d := from; d < to; d += pollStep {
		if ev := m.Process(pressed, start.Add(d)); ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}

func TestShortPressEmitsOneToggle(t *testing.T) {
	m := NewMachine(debounce, longPress)

	// Held 1000 ms, then released and polled through the release debounce.
	events := poll(m, true, 0, 1000*time.Millisecond)
	events = append(events, poll(m, false, 1000*time.Millisecond, 1200*time.Millisecond)...)

	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event, got %d: %v", len(events), events)
	}
	if events[0].Type != EventTogglePower {
		t.Errorf("expected TOGGLE_POWER, got %s", events[0].Type)
	}
	if m.State() != StateIdle {
		t.Errorf("expected IDLE after cycle, got %s", m.State())
	}
}

func TestShortPressToggleFiresAfterReleaseDebounce(t *testing.T) {
	m := NewMachine(debounce, longPress)

	poll(m, true, 0, 1000*time.Millisecond)

	// Release at 1000 ms: the toggle must not fire before the release has
	// been stable for the debounce delay.
	if ev := m.Process(false, start.Add(1000*time.Millisecond)); ev != nil {
		t.Fatalf("event on release edge: %v", ev)
	}
	if ev := m.Process(false, start.Add(1040*time.Millisecond)); ev != nil {
		t.Fatalf("event before debounce elapsed: %v", ev)
	}
	ev := m.Process(false, start.Add(1050*time.Millisecond))
	if ev == nil || ev.Type != EventTogglePower {
		t.Fatalf("expected TOGGLE_POWER at debounce expiry, got %v", ev)
	}
	if ev.Held != 1000*time.Millisecond {
		t.Errorf("Held = %v, want 1s", ev.Held)
	}
}

func TestLongPressEmitsOneMaintenance(t *testing.T) {
	m := NewMachine(debounce, longPress)

	events := poll(m, true, 0, 4000*time.Millisecond)
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event while held, got %d: %v", len(events), events)
	}
	if events[0].Type != EventEnterMaintenance {
		t.Errorf("expected ENTER_MAINTENANCE, got %s", events[0].Type)
	}
	// Fires the moment the hold crosses the threshold.
	if !events[0].Timestamp.Equal(start.Add(3000 * time.Millisecond)) {
		t.Errorf("maintenance at %v, want the 3000 ms mark", events[0].Timestamp.Sub(start))
	}

	// Release: no toggle for a long press.
	events = poll(m, false, 4000*time.Millisecond, 4200*time.Millisecond)
	if len(events) != 0 {
		t.Fatalf("expected no events on long-press release, got %v", events)
	}
	if m.State() != StateIdle {
		t.Errorf("expected IDLE after cycle, got %s", m.State())
	}
}

func TestPressBounceRejected(t *testing.T) {
	m := NewMachine(debounce, longPress)

	// Active for less than the debounce delay, then gone.
	events := poll(m, true, 0, 30*time.Millisecond)
	events = append(events, poll(m, false, 30*time.Millisecond, 200*time.Millisecond)...)

	if len(events) != 0 {
		t.Fatalf("expected no events for a bounce, got %v", events)
	}
	if m.State() != StateIdle {
		t.Errorf("expected IDLE after bounce, got %s", m.State())
	}
}

func TestReleaseBounceDoesNotRetrigger(t *testing.T) {
	m := NewMachine(debounce, longPress)

	// Accepted press.
	poll(m, true, 0, 500*time.Millisecond)

	// Release flickers low for 20 ms, then the button is down again.
	if events := poll(m, false, 500*time.Millisecond, 520*time.Millisecond); len(events) != 0 {
		t.Fatalf("expected no events during release bounce, got %v", events)
	}
	if events := poll(m, true, 520*time.Millisecond, 600*time.Millisecond); len(events) != 0 {
		t.Fatalf("expected no events after bounce rejection, got %v", events)
	}
	if m.State() != StatePressed {
		t.Errorf("expected PRESSED after release bounce, got %s", m.State())
	}

	// Clean release still yields exactly one toggle.
	events := poll(m, false, 600*time.Millisecond, 800*time.Millisecond)
	if len(events) != 1 || events[0].Type != EventTogglePower {
		t.Fatalf("expected exactly one TOGGLE_POWER, got %v", events)
	}
}

func TestLongReleaseBounceRejected(t *testing.T) {
	m := NewMachine(debounce, longPress)

	events := poll(m, true, 0, 3500*time.Millisecond)
	if len(events) != 1 || events[0].Type != EventEnterMaintenance {
		t.Fatalf("expected one ENTER_MAINTENANCE, got %v", events)
	}

	// Release bounces back to active inside the debounce window.
	if events := poll(m, false, 3500*time.Millisecond, 3520*time.Millisecond); len(events) != 0 {
		t.Fatalf("unexpected events: %v", events)
	}
	if events := poll(m, true, 3520*time.Millisecond, 3600*time.Millisecond); len(events) != 0 {
		t.Fatalf("unexpected events: %v", events)
	}
	if m.State() != StateLongPressActive {
		t.Errorf("expected LONG_PRESS_ACTIVE after bounce, got %s", m.State())
	}

	// Settled release: still no toggle, and no second maintenance trigger.
	events = poll(m, false, 3600*time.Millisecond, 3800*time.Millisecond)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %v", events)
	}
	if m.State() != StateIdle {
		t.Errorf("expected IDLE, got %s", m.State())
	}
}

func TestMaintenanceFiresExactlyOnceWhileHeld(t *testing.T) {
	m := NewMachine(debounce, longPress)

	// Hold well past the threshold; only one trigger may fire.
	events := poll(m, true, 0, 10*time.Second)
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 event over a 10 s hold, got %d", len(events))
	}
}

func TestBackToBackPresses(t *testing.T) {
	m := NewMachine(debounce, longPress)

	var events []Event
	for cycle := 0; cycle < 3; cycle++ {
		base := time.Duration(cycle) * 700 * time.Millisecond
		events = append(events, poll(m, true, base, base+500*time.Millisecond)...)
		events = append(events, poll(m, false, base+500*time.Millisecond, base+700*time.Millisecond)...)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 toggles for 3 presses, got %d: %v", len(events), events)
	}
	for i, ev := range events {
		if ev.Type != EventTogglePower {
			t.Errorf("event %d: expected TOGGLE_POWER, got %s", i, ev.Type)
		}
	}
}

func TestNoisyInputNeverStucksOrPanics(t *testing.T) {
	m := NewMachine(debounce, longPress)

	valid := map[State]bool{
		StateIdle:                   true,
		StateDebouncingPress:        true,
		StatePressed:                true,
		StateLongPressActive:        true,
		StateDebouncingShortRelease: true,
		StateDebouncingLongRelease:  true,
	}

	// Pseudo-noise: flip the level on a pattern shorter than the debounce
	// delay. Must produce zero events and never leave the state set.
	now := start
	for i := 0; i < 1000; i++ {
		pressed := i%3 == 0
		if ev := m.Process(pressed, now); ev != nil {
			t.Fatalf("sample %d: event %v from sub-debounce noise", i, ev)
		}
		if !valid[m.State()] {
			t.Fatalf("sample %d: unknown state %q", i, m.State())
		}
		now = now.Add(pollStep)
	}

	// A long stable inactive run always drains back to IDLE.
	for i := 0; i < 20; i++ {
		m.Process(false, now)
		now = now.Add(pollStep)
	}
	if m.State() != StateIdle {
		t.Errorf("expected IDLE after settling, got %s", m.State())
	}
}
