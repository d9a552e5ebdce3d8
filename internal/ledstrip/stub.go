//go:build !linux

package ledstrip

import (
	"errors"

	"github.com/sweeney/candle-lamp/internal/flicker"
)

// RealStrip is not available on non-Linux platforms.
type RealStrip struct{}

// NewRealStrip returns an error on non-Linux platforms.
func NewRealStrip(pins Pins, length int) (*RealStrip, error) {
	return nil, errors.New("ledstrip: not supported on this platform (requires Linux)")
}

// Show is not implemented on non-Linux platforms.
func (s *RealStrip) Show(frame flicker.Frame) error {
	return errors.New("ledstrip: not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *RealStrip) Close() error {
	return nil
}
