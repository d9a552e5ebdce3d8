package flicker

import "math"

// FractionDeadZone is the threshold below which the fractional LED is
// treated as unlit, avoiding flicker artifacts right at a count boundary.
const FractionDeadZone = 0.01

// BrightnessState describes how a brightness percentage spreads across a
// strip: FullCount LEDs at full flicker intensity plus, when Fraction is
// above the dead zone, one more LED dimmed by Fraction.
type BrightnessState struct {
	FullCount int
	Fraction  float64
}

// MapBrightness converts a 0-100 brightness percentage into a BrightnessState
// for a strip of stripLen LEDs. Out-of-range input is clamped, never
// rejected. Exact at the boundaries: 0% -> (0, 0) and 100% -> (stripLen, 0).
func MapBrightness(percent float64, stripLen int) BrightnessState {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	raw := percent * float64(stripLen) / 100.0
	full := int(math.Floor(raw))
	if full > stripLen {
		full = stripLen
	}

	return BrightnessState{
		FullCount: full,
		Fraction:  raw - float64(full),
	}
}
