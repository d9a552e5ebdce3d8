// Package ledstrip transmits computed frames to the APA102 strips.
// The real implementation bit-bangs the data/clock GPIO pairs of both strips
// through the Linux GPIO character device; the fake records frames for tests.
package ledstrip

import "github.com/sweeney/candle-lamp/internal/flicker"

// Strip writes animation frames to the LED hardware.
type Strip interface {
	// Show writes the frame to every physical strip. Both strips always
	// receive the identical frame; synchronization is by construction.
	Show(frame flicker.Frame) error

	// Close blanks the strips and releases GPIO resources.
	Close() error
}

// Pins holds the data/clock GPIO pairs for both strips (BCM numbering).
type Pins struct {
	Strip1Data  int
	Strip1Clock int
	Strip2Data  int
	Strip2Clock int
}

// DefaultPins mirrors the wiring of the original dual-strip lamp.
var DefaultPins = Pins{
	Strip1Data:  10,
	Strip1Clock: 11,
	Strip2Data:  20,
	Strip2Clock: 21,
}
