package ledstrip

import "github.com/sweeney/candle-lamp/internal/flicker"

// FakeStrip records shown frames for test assertions.
type FakeStrip struct {
	// Frames contains a copy of every frame passed to Show, in order.
	Frames []flicker.Frame

	// ShowError, if set, will be returned by Show.
	ShowError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeStrip creates a FakeStrip for testing.
func NewFakeStrip() *FakeStrip {
	return &FakeStrip{}
}

// Show records a copy of the frame.
func (f *FakeStrip) Show(frame flicker.Frame) error {
	if f.ShowError != nil {
		return f.ShowError
	}

	cp := make(flicker.Frame, len(frame))
	copy(cp, frame)
	f.Frames = append(f.Frames, cp)
	return nil
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently shown frame, or nil if none.
func (f *FakeStrip) Last() flicker.Frame {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Reset clears recorded frames.
func (f *FakeStrip) Reset() {
	f.Frames = nil
	f.Closed = false
	f.ShowError = nil
}
