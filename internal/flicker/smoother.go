package flicker

// Smooth applies one exponential smoothing step toward target.
// With alpha in [0,1] the result always lies between previous and target.
func Smooth(alpha, previous, target float64) float64 {
	return alpha*previous + (1-alpha)*target
}

// Smoother holds one smoothed brightness track per LED slot. The tracks
// persist across ticks for the life of the process; callers advance a slot
// with Step and the new value becomes that slot's previous value.
type Smoother struct {
	cfg Config
	rng Source

	// prev holds the last smoothed brightness percent per slot. Seeded
	// mid-range so the first frames do not jump up from black.
	prev []float64
}

// NewSmoother creates a Smoother with one track per LED slot.
func NewSmoother(cfg Config, slots int, rng Source) *Smoother {
	prev := make([]float64, slots)
	for i := range prev {
		prev[i] = 70.0 + float64(rng.IntRange(0, 30))
	}
	return &Smoother{cfg: cfg, rng: rng, prev: prev}
}

// Step picks a fresh random target around the 100% baseline, smooths the
// given slot toward it, stores the result as the slot's new previous value,
// and returns it.
func (s *Smoother) Step(slot int) float64 {
	target := 100.0 + float64(s.rng.IntRange(s.cfg.VariationMin, s.cfg.VariationMax))
	target = clamp(target, s.cfg.BrightnessMin, s.cfg.BrightnessMax)

	smoothed := Smooth(s.cfg.Smoothing, s.prev[slot], target)

	// A pathological stored value (e.g. injected by a bad config before
	// validation existed) must not escape the configured band forever.
	smoothed = clamp(smoothed, 0, s.cfg.BrightnessMax)

	s.prev[slot] = smoothed
	return smoothed
}

// Previous returns the stored value for a slot without advancing it.
func (s *Smoother) Previous(slot int) float64 {
	return s.prev[slot]
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
