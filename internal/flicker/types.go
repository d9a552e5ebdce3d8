// Package flicker contains the pure candle animation core: the exponential
// smoothing walk, the brightness-to-LED-count mapper, and the per-frame
// renderer. This package has NO external dependencies (no GPIO, strips, MQTT,
// or time.Sleep). Randomness is always injectable via Source.
package flicker

// Color is an HSV triple ready for the strip layer. The zero value is black.
type Color struct {
	Hue int   // degrees, [0,360)
	Sat uint8 // 0-255
	Val uint8 // 0-255
}

// Frame is one computed animation frame, indexed by LED position. Both
// physical strips always show the same frame; the transmit layer replicates
// it, so there is exactly one sequence here by construction.
type Frame []Color

// Config holds the flicker tuning parameters, normally loaded from the
// config file.
type Config struct {
	// Smoothing is the exponential smoothing factor alpha in [0,1].
	// Higher values give a calmer flame.
	Smoothing float64

	// VariationMin/Max bound the random offset added to the 100% baseline
	// when picking a brightness target (inclusive).
	VariationMin int
	VariationMax int

	// BrightnessMin/Max clamp the random target, in brightness percent.
	BrightnessMin float64
	BrightnessMax float64

	// HueJitterMin/Max bound the per-tick hue offset in degrees (inclusive).
	HueJitterMin int
	HueJitterMax int
}
