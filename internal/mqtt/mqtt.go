// Package mqtt provides the smart-home remote surface for the lamp:
// event/state publishing and remote-control command subscription, with
// abstraction for testing.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sweeney/candle-lamp/internal/button"
)

// Topic is the MQTT topic for lamp events (button toggles, maintenance).
const Topic = "home/candle-lamp/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/candle-lamp/system"

// TopicSet is the MQTT topic the lamp subscribes to for remote control.
const TopicSet = "home/candle-lamp/set"

// Event represents a lamp event to be published.
type Event struct {
	Timestamp time.Time
	Type      button.EventType
	Power     bool // lamp power state after the event was applied
	Held      time.Duration
}

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a lamp event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure for lamp events.
type Payload struct {
	Lamp LampPayload `json:"lamp"`
}

// LampPayload contains the lamp event details.
type LampPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Power     string `json:"power"`
	HeldMs    int64  `json:"held_ms"`
}

// FormatPayload creates the JSON payload for a lamp event.
func FormatPayload(event Event) ([]byte, error) {
	power := "OFF"
	if event.Power {
		power = "ON"
	}
	payload := Payload{
		Lamp: LampPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Power:     power,
			HeldMs:    event.Held.Milliseconds(),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Command is a remote-control message received on TopicSet. Pointer fields
// distinguish "absent" from zero, so partial updates work:
//
//	{"power": false}
//	{"hue": 25, "saturation": 100, "brightness": 60}
type Command struct {
	Power      *bool    `json:"power,omitempty"`
	Hue        *float64 `json:"hue,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Brightness *float64 `json:"brightness,omitempty"`
}

// CommandHandler receives remote-control commands. Invoked from the MQTT
// client's callback goroutine; implementations must be safe to call there.
type CommandHandler func(Command)

// ParseCommand decodes a TopicSet message.
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("parse command: %w", err)
	}
	return cmd, nil
}
