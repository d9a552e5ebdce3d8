package flicker

import "math/rand"

// Source yields uniform random integers for the flicker animation.
// Injected so tests can seed the walk and assert exact frames.
type Source interface {
	// IntRange returns a uniform value in [min, max] inclusive.
	IntRange(min, max int) int
}

// NewSource returns a Source backed by math/rand with the given seed.
// Production seeds from the wall clock; tests pass a fixed seed.
func NewSource(seed int64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

type randSource struct {
	r *rand.Rand
}

func (s *randSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// FixedSource always returns the same value. Used in tests to pin the
// random walk's target.
type FixedSource int

// IntRange returns the fixed value clamped into [min, max].
func (f FixedSource) IntRange(min, max int) int {
	v := int(f)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
