package ledstrip

import (
	"testing"

	"github.com/sweeney/candle-lamp/internal/flicker"
)

func TestHSVToRGBPrimaries(t *testing.T) {
	cases := []struct {
		name string
		in   flicker.Color
		want rgb
	}{
		{"red", flicker.Color{Hue: 0, Sat: 255, Val: 255}, rgb{255, 0, 0}},
		{"yellow", flicker.Color{Hue: 60, Sat: 255, Val: 255}, rgb{255, 255, 0}},
		{"green", flicker.Color{Hue: 120, Sat: 255, Val: 255}, rgb{0, 255, 0}},
		{"cyan", flicker.Color{Hue: 180, Sat: 255, Val: 255}, rgb{0, 255, 255}},
		{"blue", flicker.Color{Hue: 240, Sat: 255, Val: 255}, rgb{0, 0, 255}},
		{"magenta", flicker.Color{Hue: 300, Sat: 255, Val: 255}, rgb{255, 0, 255}},
		{"black", flicker.Color{}, rgb{0, 0, 0}},
		{"white", flicker.Color{Hue: 0, Sat: 0, Val: 255}, rgb{255, 255, 255}},
	}

	for _, tc := range cases {
		if got := hsvToRGB(tc.in); got != tc.want {
			t.Errorf("%s: hsvToRGB(%+v) = %+v, want %+v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestHSVToRGBCandleOrange(t *testing.T) {
	// Hue 25 at full saturation: red dominant, green partial, no blue.
	got := hsvToRGB(flicker.Color{Hue: 25, Sat: 255, Val: 255})
	if got.r != 255 {
		t.Errorf("r = %d, want 255", got.r)
	}
	if got.g == 0 || got.g >= got.r {
		t.Errorf("g = %d, want between 0 and r", got.g)
	}
	if got.b != 0 {
		t.Errorf("b = %d, want 0", got.b)
	}
}

func TestHSVToRGBValueScales(t *testing.T) {
	full := hsvToRGB(flicker.Color{Hue: 25, Sat: 255, Val: 255})
	half := hsvToRGB(flicker.Color{Hue: 25, Sat: 255, Val: 128})

	if half.r >= full.r {
		t.Errorf("half value r = %d, want < %d", half.r, full.r)
	}
	if half.r == 0 {
		t.Error("half value should not be black")
	}
}

func TestHSVToRGBZeroValueIsBlack(t *testing.T) {
	got := hsvToRGB(flicker.Color{Hue: 200, Sat: 200, Val: 0})
	if got != (rgb{}) {
		t.Errorf("got %+v, want black", got)
	}
}

func TestFakeStripRecordsCopies(t *testing.T) {
	f := NewFakeStrip()

	frame := flicker.Frame{{Hue: 25, Sat: 255, Val: 100}}
	if err := f.Show(frame); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's frame must not affect the recording.
	frame[0].Val = 0
	if f.Last()[0].Val != 100 {
		t.Error("recorded frame aliases the caller's buffer")
	}

	if len(f.Frames) != 1 {
		t.Errorf("recorded %d frames, want 1", len(f.Frames))
	}
}

func TestFakeStripLastEmpty(t *testing.T) {
	f := NewFakeStrip()
	if f.Last() != nil {
		t.Error("Last on empty strip should be nil")
	}
}
