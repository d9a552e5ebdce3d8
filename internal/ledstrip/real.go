//go:build linux

package ledstrip

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/candle-lamp/internal/flicker"
)

// RealStrip drives two APA102 strips on actual hardware. Each strip hangs off
// its own data/clock GPIO pair, clocked by bit-banging through the character
// device. APA102 has no timing floor, so a slow clock is fine.
type RealStrip struct {
	chip   *gpiocdev.Chip
	pairs  [2]linePair
	length int
}

type linePair struct {
	data  *gpiocdev.Line
	clock *gpiocdev.Line
}

// NewRealStrip opens the GPIO lines for both strips and blanks them.
func NewRealStrip(pins Pins, length int) (*RealStrip, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	s := &RealStrip{chip: chip, length: length}
	pinPairs := [2][2]int{
		{pins.Strip1Data, pins.Strip1Clock},
		{pins.Strip2Data, pins.Strip2Clock},
	}

	for i, pp := range pinPairs {
		data, err := chip.RequestLine(pp[0], gpiocdev.AsOutput(0))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("request strip %d data pin %d: %w", i+1, pp[0], err)
		}
		s.pairs[i].data = data

		clock, err := chip.RequestLine(pp[1], gpiocdev.AsOutput(0))
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("request strip %d clock pin %d: %w", i+1, pp[1], err)
		}
		s.pairs[i].clock = clock
	}

	if err := s.Show(make(flicker.Frame, length)); err != nil {
		s.Close()
		return nil, fmt.Errorf("blank strips: %w", err)
	}

	return s, nil
}

// Show writes the frame to both strips. Frames shorter than the strip leave
// the remaining LEDs black.
func (s *RealStrip) Show(frame flicker.Frame) error {
	for i := range s.pairs {
		if err := s.showOne(s.pairs[i], frame); err != nil {
			return fmt.Errorf("strip %d: %w", i+1, err)
		}
	}
	return nil
}

// showOne shifts one APA102 frame out a single data/clock pair:
// a 32-bit start frame of zeros, one LED frame per pixel (0xFF global
// brightness then B, G, R), and an end frame of ones long enough to clock the
// data through the whole chain.
func (s *RealStrip) showOne(p linePair, frame flicker.Frame) error {
	for i := 0; i < 4; i++ {
		if err := s.writeByte(p, 0x00); err != nil {
			return err
		}
	}

	for i := 0; i < s.length; i++ {
		var c rgb
		if i < len(frame) {
			c = hsvToRGB(frame[i])
		}
		for _, b := range [4]uint8{0xFF, c.b, c.g, c.r} {
			if err := s.writeByte(p, b); err != nil {
				return err
			}
		}
	}

	endBytes := (s.length + 15) / 16
	if endBytes < 4 {
		endBytes = 4
	}
	for i := 0; i < endBytes; i++ {
		if err := s.writeByte(p, 0xFF); err != nil {
			return err
		}
	}

	return nil
}

// writeByte shifts one byte out MSB first.
func (s *RealStrip) writeByte(p linePair, b uint8) error {
	for bit := 7; bit >= 0; bit-- {
		v := 0
		if b&(1<<uint(bit)) != 0 {
			v = 1
		}
		if err := p.data.SetValue(v); err != nil {
			return fmt.Errorf("set data: %w", err)
		}
		if err := p.clock.SetValue(1); err != nil {
			return fmt.Errorf("clock high: %w", err)
		}
		if err := p.clock.SetValue(0); err != nil {
			return fmt.Errorf("clock low: %w", err)
		}
	}
	return nil
}

// Close blanks both strips and releases GPIO resources.
func (s *RealStrip) Close() error {
	var errs []error

	// Best-effort blank; lines may be half-initialized during construction.
	if s.pairs[0].data != nil && s.pairs[0].clock != nil &&
		s.pairs[1].data != nil && s.pairs[1].clock != nil {
		if err := s.Show(make(flicker.Frame, s.length)); err != nil {
			errs = append(errs, fmt.Errorf("blank on close: %w", err))
		}
	}

	for i := range s.pairs {
		if s.pairs[i].data != nil {
			if err := s.pairs[i].data.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close strip %d data: %w", i+1, err))
			}
		}
		if s.pairs[i].clock != nil {
			if err := s.pairs[i].clock.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close strip %d clock: %w", i+1, err))
			}
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
