package status

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestTracker() *Tracker {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return NewTracker(start,
		LampState{Power: true, Hue: 25, Saturation: 100, Brightness: 100},
		Config{
			LEDCount:   8,
			FrameMs:    60,
			PollMs:     10,
			DebounceMs: 50,
			Broker:     "tcp://localhost:1883",
			HTTPAddr:   ":8080",
		})
}

func TestTrackerInitialState(t *testing.T) {
	tr := newTestTracker()
	lamp := tr.Lamp()
	if !lamp.Power || lamp.Hue != 25 || lamp.Saturation != 100 || lamp.Brightness != 100 {
		t.Errorf("unexpected initial lamp state: %+v", lamp)
	}
}

func TestTogglePower(t *testing.T) {
	tr := newTestTracker()

	if on := tr.TogglePower(); on {
		t.Error("first toggle should turn the lamp off")
	}
	if on := tr.TogglePower(); !on {
		t.Error("second toggle should turn the lamp back on")
	}

	snap := tr.Snapshot()
	if snap.Counts.Toggles != 2 {
		t.Errorf("Toggles = %d, want 2", snap.Counts.Toggles)
	}
}

func TestSetColorPartialUpdate(t *testing.T) {
	tr := newTestTracker()

	hue := 40.0
	tr.SetColor(&hue, nil, nil)

	lamp := tr.Lamp()
	if lamp.Hue != 40 {
		t.Errorf("Hue = %v, want 40", lamp.Hue)
	}
	if lamp.Saturation != 100 || lamp.Brightness != 100 {
		t.Errorf("nil fields changed: %+v", lamp)
	}
}

func TestSetColorClamps(t *testing.T) {
	tr := newTestTracker()

	hue := 400.0
	sat := 150.0
	bri := -10.0
	tr.SetColor(&hue, &sat, &bri)

	lamp := tr.Lamp()
	if lamp.Hue != 40 {
		t.Errorf("Hue = %v, want 400 wrapped to 40", lamp.Hue)
	}
	if lamp.Saturation != 100 {
		t.Errorf("Saturation = %v, want clamped to 100", lamp.Saturation)
	}
	if lamp.Brightness != 0 {
		t.Errorf("Brightness = %v, want clamped to 0", lamp.Brightness)
	}
}

func TestInitialLampStateClamped(t *testing.T) {
	start := time.Now()
	tr := NewTracker(start, LampState{Hue: -10, Saturation: 120, Brightness: 200}, Config{})

	lamp := tr.Lamp()
	if lamp.Hue != 350 {
		t.Errorf("Hue = %v, want -10 wrapped to 350", lamp.Hue)
	}
	if lamp.Saturation != 100 || lamp.Brightness != 100 {
		t.Errorf("percent channels not clamped: %+v", lamp)
	}
}

func TestRecordCounts(t *testing.T) {
	tr := newTestTracker()
	tr.RecordMaintenance()
	tr.RecordCommand()
	tr.RecordCommand()

	snap := tr.Snapshot()
	if snap.Counts.Maintenance != 1 {
		t.Errorf("Maintenance = %d, want 1", snap.Counts.Maintenance)
	}
	if snap.Counts.Commands != 2 {
		t.Errorf("Commands = %d, want 2", snap.Counts.Commands)
	}
}

func TestSnapshotIsValueCopy(t *testing.T) {
	tr := newTestTracker()
	snap := tr.Snapshot()
	tr.TogglePower()

	if !snap.Lamp.Power {
		t.Error("snapshot mutated by later TogglePower")
	}
}

func TestFormatJSON(t *testing.T) {
	tr := newTestTracker()
	tr.SetMQTTConnected(true)

	var parsed StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Power != "ON" {
		t.Errorf("power = %q, want ON", parsed.Status.Power)
	}
	if parsed.Status.Hue != 25 {
		t.Errorf("hue = %v, want 25", parsed.Status.Hue)
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("mqtt.connected = false, want true")
	}
	if parsed.Status.Event != "" {
		t.Errorf("event = %q, want empty for web JSON", parsed.Status.Event)
	}
	if parsed.Status.Config.LEDCount != 8 {
		t.Errorf("config.led_count = %d, want 8", parsed.Status.Config.LEDCount)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := newTestTracker()

	var parsed StatusJSON
	payload := FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM")
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event = %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason = %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(90 * time.Second)}
	if snap.Uptime() != 90*time.Second {
		t.Errorf("Uptime = %v, want 90s", snap.Uptime())
	}
}
