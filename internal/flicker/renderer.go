package flicker

import "math"

// Renderer produces one Frame per animation tick from the desired lamp state.
// It owns the smoothing tracks; the caller owns the desired state and the
// tick cadence.
type Renderer struct {
	cfg      Config
	stripLen int
	smoother *Smoother
	rng      Source
}

// NewRenderer creates a Renderer for a strip of stripLen LEDs.
func NewRenderer(cfg Config, stripLen int, rng Source) *Renderer {
	return &Renderer{
		cfg:      cfg,
		stripLen: stripLen,
		smoother: NewSmoother(cfg, stripLen, rng),
		rng:      rng,
	}
}

// Render computes the frame for the current tick.
//
// Powered off it returns an all-black frame WITHOUT advancing any smoothing
// slot, so the flame resumes from its last value when power returns rather
// than from a stale high-variance seed. Powered on, brightness selects how
// many LEDs flicker; a fractional trailing LED is dimmed by the fraction.
func (r *Renderer) Render(power bool, hue, saturation, brightness float64) Frame {
	frame := make(Frame, r.stripLen)
	if !power {
		return frame
	}

	bs := MapBrightness(brightness, r.stripLen)
	if bs.FullCount == 0 && bs.Fraction < FractionDeadZone {
		return frame
	}

	for i := 0; i < bs.FullCount; i++ {
		frame[i] = r.flickerColor(i, hue, saturation, 1.0)
	}

	if bs.Fraction > FractionDeadZone && bs.FullCount < r.stripLen {
		frame[bs.FullCount] = r.flickerColor(bs.FullCount, hue, saturation, bs.Fraction)
	}

	return frame
}

// flickerColor advances one smoothing slot and derives the LED's color:
// jittered hue, base saturation, smoothed value scaled by the fractional
// dimming factor.
func (r *Renderer) flickerColor(slot int, hue, saturation, scale float64) Color {
	smoothed := r.smoother.Step(slot)

	jittered := wrapHue(int(hue) + r.rng.IntRange(r.cfg.HueJitterMin, r.cfg.HueJitterMax))

	return Color{
		Hue: jittered,
		Sat: percentToByte(saturation),
		Val: percentToByte(smoothed * scale),
	}
}

// percentToByte maps a 0-100 percentage onto the 0-255 channel range.
// Input is clamped first, so smoothed values in the over-100 band saturate
// at full output instead of overflowing.
func percentToByte(p float64) uint8 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return uint8(math.Round(p * 255.0 / 100.0))
}

// wrapHue normalizes a hue into [0,360) with floored modulo.
func wrapHue(h int) int {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}
