// Package config loads and validates the daemon configuration from YAML.
// Every tunable of the lamp lives here; invalid values are reported once at
// startup and never re-checked by the animation or button core.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/candle-lamp/internal/gpio"
	"github.com/sweeney/candle-lamp/internal/ledstrip"
)

// Config represents the daemon configuration.
type Config struct {
	LEDCount int      `yaml:"led_count"`
	Frame    Duration `yaml:"frame_interval"` // animation tick period
	Poll     Duration `yaml:"poll_interval"`  // button poll period

	Flicker FlickerConfig `yaml:"flicker"`
	Button  ButtonConfig  `yaml:"button"`
	Lamp    LampConfig    `yaml:"lamp"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	HTTP    HTTPConfig    `yaml:"http"`
	Pins    PinsConfig    `yaml:"pins"`
}

// FlickerConfig contains the candle animation tunables.
type FlickerConfig struct {
	// Smoothing is the exponential smoothing factor in [0,1].
	// 0.70-0.80 gives natural candle movement; higher is calmer.
	Smoothing     float64 `yaml:"smoothing"`
	VariationMin  int     `yaml:"variation_min"`  // random offset around 100%, low end
	VariationMax  int     `yaml:"variation_max"`  // random offset around 100%, high end
	BrightnessMin float64 `yaml:"brightness_min"` // clamp for the random target
	BrightnessMax float64 `yaml:"brightness_max"`
	HueJitterMin  int     `yaml:"hue_jitter_min"` // per-tick hue shift, degrees
	HueJitterMax  int     `yaml:"hue_jitter_max"`
}

// ButtonConfig contains the power-button timing.
type ButtonConfig struct {
	Debounce  Duration `yaml:"debounce"`
	LongPress Duration `yaml:"long_press"`
}

// LampConfig is the power-on lamp state.
type LampConfig struct {
	Power      bool    `yaml:"power"`
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Brightness float64 `yaml:"brightness"`
}

// MQTTConfig contains broker settings.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
}

// HTTPConfig contains status server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the status server
}

// PinsConfig contains GPIO pin assignments (BCM numbering).
type PinsConfig struct {
	Button      int `yaml:"button"`
	Strip1Data  int `yaml:"strip1_data"`
	Strip1Clock int `yaml:"strip1_clock"`
	Strip2Data  int `yaml:"strip2_data"`
	Strip2Clock int `yaml:"strip2_clock"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// AsDuration returns the native time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration: an 8-LED orange candle matching
// the original lamp's power-on behavior.
func Default() Config {
	return Config{
		LEDCount: 8,
		Frame:    Duration(60 * time.Millisecond),
		Poll:     Duration(10 * time.Millisecond),
		Flicker: FlickerConfig{
			Smoothing:     0.75,
			VariationMin:  -40,
			VariationMax:  20,
			BrightnessMin: 30,
			BrightnessMax: 120,
			HueJitterMin:  -8,
			HueJitterMax:  15,
		},
		Button: ButtonConfig{
			Debounce:  Duration(50 * time.Millisecond),
			LongPress: Duration(3 * time.Second),
		},
		Lamp: LampConfig{
			Power:      true,
			Hue:        25,
			Saturation: 100,
			Brightness: 100,
		},
		MQTT: MQTTConfig{
			Broker: "tcp://192.168.1.200:1883",
		},
		HTTP: HTTPConfig{
			Addr: ":80",
		},
		Pins: PinsConfig{
			Button:      gpio.DefaultPinButton,
			Strip1Data:  ledstrip.DefaultPins.Strip1Data,
			Strip1Clock: ledstrip.DefaultPins.Strip1Clock,
			Strip2Data:  ledstrip.DefaultPins.Strip2Data,
			Strip2Clock: ledstrip.DefaultPins.Strip2Clock,
		},
	}
}

// Load reads the configuration file at path, layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration, returning the first problem found.
// Called once at startup; the core packages assume a valid config.
func (c Config) Validate() error {
	if c.LEDCount <= 0 {
		return fmt.Errorf("led_count must be positive, got %d", c.LEDCount)
	}
	if c.Frame.AsDuration() <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %v", c.Frame.AsDuration())
	}
	if c.Poll.AsDuration() <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %v", c.Poll.AsDuration())
	}
	if c.Flicker.Smoothing < 0 || c.Flicker.Smoothing > 1 {
		return fmt.Errorf("flicker.smoothing must be in [0,1], got %v", c.Flicker.Smoothing)
	}
	if c.Flicker.VariationMin > c.Flicker.VariationMax {
		return fmt.Errorf("flicker.variation_min %d > variation_max %d",
			c.Flicker.VariationMin, c.Flicker.VariationMax)
	}
	if c.Flicker.BrightnessMin >= c.Flicker.BrightnessMax {
		return fmt.Errorf("flicker.brightness_min %v must be below brightness_max %v",
			c.Flicker.BrightnessMin, c.Flicker.BrightnessMax)
	}
	if c.Flicker.BrightnessMin < 0 {
		return fmt.Errorf("flicker.brightness_min must not be negative, got %v", c.Flicker.BrightnessMin)
	}
	if c.Flicker.HueJitterMin > c.Flicker.HueJitterMax {
		return fmt.Errorf("flicker.hue_jitter_min %d > hue_jitter_max %d",
			c.Flicker.HueJitterMin, c.Flicker.HueJitterMax)
	}
	if c.Button.Debounce.AsDuration() <= 0 {
		return fmt.Errorf("button.debounce must be positive, got %v", c.Button.Debounce.AsDuration())
	}
	if c.Button.Debounce.AsDuration() >= c.Button.LongPress.AsDuration() {
		return fmt.Errorf("button.debounce %v must be below long_press %v",
			c.Button.Debounce.AsDuration(), c.Button.LongPress.AsDuration())
	}
	return nil
}
