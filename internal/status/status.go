// Package status provides a thread-safe tracker for the candle-lamp daemon.
// It owns the authoritative desired lamp state, mutated by the power button
// and by remote MQTT commands, and read by the animation loop, the HTTP
// handlers, and the MQTT system-event payloads.
package status

import (
	"sync"
	"time"
)

// LampState is the desired state of the lamp.
type LampState struct {
	Power      bool
	Hue        float64 // degrees, [0,360)
	Saturation float64 // percent, [0,100]
	Brightness float64 // percent, [0,100]
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Toggles     int
	Maintenance int
	Commands    int
}

// Config contains daemon configuration for display.
type Config struct {
	LEDCount    int
	FrameMs     int64
	PollMs      int64
	DebounceMs  int64
	LongPressMs int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Lamp          LampState
	Counts        EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time, initial lamp state
// and config.
func NewTracker(startTime time.Time, initial LampState, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Lamp:      clampLamp(initial),
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Lamp returns the current desired lamp state.
// Called from the animation tick on every frame.
func (t *Tracker) Lamp() LampState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap.Lamp
}

// TogglePower flips the power state, counts the toggle, and returns the new
// state. Applied when the button emits a toggle event.
func (t *Tracker) TogglePower() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Lamp.Power = !t.snap.Lamp.Power
	t.snap.Counts.Toggles++
	return t.snap.Lamp.Power
}

// SetPower sets the power state directly (remote command).
func (t *Tracker) SetPower(on bool) {
	t.mu.Lock()
	t.snap.Lamp.Power = on
	t.mu.Unlock()
}

// SetColor updates the color channels from a remote command. Nil fields are
// left unchanged; values are clamped, never rejected.
func (t *Tracker) SetColor(hue, saturation, brightness *float64) {
	t.mu.Lock()
	if hue != nil {
		t.snap.Lamp.Hue = wrapHue(*hue)
	}
	if saturation != nil {
		t.snap.Lamp.Saturation = clampPercent(*saturation)
	}
	if brightness != nil {
		t.snap.Lamp.Brightness = clampPercent(*brightness)
	}
	t.mu.Unlock()
}

// RecordCommand counts a received remote command.
func (t *Tracker) RecordCommand() {
	t.mu.Lock()
	t.snap.Counts.Commands++
	t.mu.Unlock()
}

// RecordMaintenance counts a maintenance-mode trigger.
func (t *Tracker) RecordMaintenance() {
	t.mu.Lock()
	t.snap.Counts.Maintenance++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

func clampLamp(l LampState) LampState {
	l.Hue = wrapHue(l.Hue)
	l.Saturation = clampPercent(l.Saturation)
	l.Brightness = clampPercent(l.Brightness)
	return l
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}
