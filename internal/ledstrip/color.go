package ledstrip

import "github.com/sweeney/candle-lamp/internal/flicker"

// rgb is an 8-bit RGB triple in wire order for the APA102 LED frame.
type rgb struct {
	r, g, b uint8
}

// hsvToRGB converts an animation color to RGB. Standard HSV conversion with
// hue in degrees and 8-bit saturation/value channels.
func hsvToRGB(c flicker.Color) rgb {
	if c.Sat == 0 {
		return rgb{c.Val, c.Val, c.Val}
	}

	h := c.Hue % 360
	region := h / 60
	rem := h % 60

	v := int(c.Val)
	s := int(c.Sat)

	p := v * (255 - s) / 255
	q := v * (255*60 - s*rem) / (255 * 60)
	t := v * (255*60 - s*(60-rem)) / (255 * 60)

	switch region {
	case 0:
		return rgb{uint8(v), uint8(t), uint8(p)}
	case 1:
		return rgb{uint8(q), uint8(v), uint8(p)}
	case 2:
		return rgb{uint8(p), uint8(v), uint8(t)}
	case 3:
		return rgb{uint8(p), uint8(q), uint8(v)}
	case 4:
		return rgb{uint8(t), uint8(p), uint8(v)}
	default:
		return rgb{uint8(v), uint8(p), uint8(q)}
	}
}
