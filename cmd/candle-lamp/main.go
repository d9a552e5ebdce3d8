// Command candle-lamp drives a dual-strip LED candle: it animates a flicker
// effect, watches the power button, and exposes the lamp over MQTT and HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/candle-lamp/internal/button"
	"github.com/sweeney/candle-lamp/internal/config"
	"github.com/sweeney/candle-lamp/internal/flicker"
	"github.com/sweeney/candle-lamp/internal/gpio"
	"github.com/sweeney/candle-lamp/internal/ledstrip"
	"github.com/sweeney/candle-lamp/internal/mqtt"
	"github.com/sweeney/candle-lamp/internal/status"
	"github.com/sweeney/candle-lamp/internal/web"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (empty uses built-in defaults)")
	broker := flag.String("broker", "", "MQTT broker address (overrides config)")
	httpAddr := flag.String("http", "=config", `HTTP status address ("=config" uses the config value, empty disables)`)
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	printState := flag.Bool("print-state", false, "Print the current button level and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if *broker != "" {
		cfg.MQTT.Broker = *broker
	}
	if *httpAddr != "=config" {
		cfg.HTTP.Addr = *httpAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if err := run(cfg, *heartbeat, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config.Config, heartbeat time.Duration, printState bool) error {
	// Initialize GPIO
	buttonReader, err := gpio.NewRealReader(cfg.Pins.Button)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer buttonReader.Close()

	// Print state mode
	if printState {
		pressed, err := buttonReader.Read()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		state := "RELEASED"
		if pressed {
			state = "PRESSED"
		}
		fmt.Printf("button: %s\n", state)
		return nil
	}

	// Initialize LED strips
	strip, err := ledstrip.NewRealStrip(ledstrip.Pins{
		Strip1Data:  cfg.Pins.Strip1Data,
		Strip1Clock: cfg.Pins.Strip1Clock,
		Strip2Data:  cfg.Pins.Strip2Data,
		Strip2Clock: cfg.Pins.Strip2Clock,
	}, cfg.LEDCount)
	if err != nil {
		return fmt.Errorf("init led strips: %w", err)
	}
	defer strip.Close()

	// Initialize status tracker (before MQTT so the command handler can use it)
	tracker := status.NewTracker(time.Now(), status.LampState{
		Power:      cfg.Lamp.Power,
		Hue:        cfg.Lamp.Hue,
		Saturation: cfg.Lamp.Saturation,
		Brightness: cfg.Lamp.Brightness,
	}, status.Config{
		LEDCount:    cfg.LEDCount,
		FrameMs:     cfg.Frame.AsDuration().Milliseconds(),
		PollMs:      cfg.Poll.AsDuration().Milliseconds(),
		DebounceMs:  cfg.Button.Debounce.AsDuration().Milliseconds(),
		LongPressMs: cfg.Button.LongPress.AsDuration().Milliseconds(),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
	})

	// Initialize MQTT with the remote-control handler
	publisher, err := mqtt.NewRealClient(cfg.MQTT.Broker, func(cmd mqtt.Command) {
		applyCommand(tracker, cmd)
	})
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Publish startup event with full status snapshot
	tracker.SetMQTTConnected(publisher.IsConnected())
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: leds=%d frame=%v poll=%v broker=%s",
		cfg.LEDCount, cfg.Frame.AsDuration(), cfg.Poll.AsDuration(), cfg.MQTT.Broker)

	machine := button.NewMachine(cfg.Button.Debounce.AsDuration(), cfg.Button.LongPress.AsDuration())
	renderer := flicker.NewRenderer(flicker.Config{
		Smoothing:     cfg.Flicker.Smoothing,
		VariationMin:  cfg.Flicker.VariationMin,
		VariationMax:  cfg.Flicker.VariationMax,
		BrightnessMin: cfg.Flicker.BrightnessMin,
		BrightnessMax: cfg.Flicker.BrightnessMax,
		HueJitterMin:  cfg.Flicker.HueJitterMin,
		HueJitterMax:  cfg.Flicker.HueJitterMax,
	}, cfg.LEDCount, flicker.NewSource(time.Now().UnixNano()))

	pollTicker := time.NewTicker(cfg.Poll.AsDuration())
	defer pollTicker.Stop()
	frameTicker := time.NewTicker(cfg.Frame.AsDuration())
	defer frameTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(buttonReader, strip, publisher, publisher, tracker, machine, renderer,
		heartbeat, time.Now, pollTicker.C, frameTicker.C, sigCh)
}

// applyCommand updates the desired lamp state from a remote-control message.
// Runs on the MQTT client's callback goroutine; the tracker is the sync point.
func applyCommand(tracker *status.Tracker, cmd mqtt.Command) {
	if cmd.Power != nil {
		tracker.SetPower(*cmd.Power)
	}
	tracker.SetColor(cmd.Hue, cmd.Saturation, cmd.Brightness)
	tracker.RecordCommand()
	lamp := tracker.Lamp()
	log.Printf("remote command applied: power=%v hue=%.0f sat=%.0f bri=%.0f",
		lamp.Power, lamp.Hue, lamp.Saturation, lamp.Brightness)
}

// runLoop is the daemon's single event loop: button polling, frame rendering
// and heartbeats all happen here, so lamp state needs no further locking
// beyond the tracker.
func runLoop(buttonReader gpio.Reader, strip ledstrip.Strip, publisher mqtt.Publisher,
	mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, machine *button.Machine,
	renderer *flicker.Renderer, heartbeat time.Duration, now func() time.Time,
	pollTick, frameTick <-chan time.Time, sig <-chan os.Signal) error {

	lastHeartbeat := now()

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
			snap := tracker.Snapshot()
			event := mqtt.SystemEvent{
				Timestamp:  snap.Now,
				Event:      "SHUTDOWN",
				Reason:     signalName,
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-pollTick:
			t := now()
			pressed, err := buttonReader.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				continue
			}

			ev := machine.Process(pressed, t)
			if ev == nil {
				continue
			}

			switch ev.Type {
			case button.EventTogglePower:
				power := tracker.TogglePower()
				log.Printf("button: toggle power -> %v (held %v)", power, ev.Held)
				publishEvent(publisher, mqtt.Event{
					Timestamp: ev.Timestamp,
					Type:      ev.Type,
					Power:     power,
					Held:      ev.Held,
				})

			case button.EventEnterMaintenance:
				tracker.RecordMaintenance()
				log.Printf("button: maintenance trigger (held %v)", ev.Held)
				publishEvent(publisher, mqtt.Event{
					Timestamp: ev.Timestamp,
					Type:      ev.Type,
					Power:     tracker.Lamp().Power,
					Held:      ev.Held,
				})
			}

		case <-frameTick:
			t := now()
			lamp := tracker.Lamp()
			frame := renderer.Render(lamp.Power, lamp.Hue, lamp.Saturation, lamp.Brightness)
			if err := strip.Show(frame); err != nil {
				log.Printf("led write error: %v", err)
			}

			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}

			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				snap := tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp:  snap.Now,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// publishEvent logs instead of crashing on failure; a flaky broker must never
// take the lamp down.
func publishEvent(publisher mqtt.Publisher, event mqtt.Event) {
	if err := publisher.Publish(event); err != nil {
		log.Printf("publish error: %v", err)
	}
}
