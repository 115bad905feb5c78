package sac

import "math"

const int16Span = 65535

// Normalize maps an int16 onto [0, 255], sending -32768 to 0 and 32767 to 255.
// The result is unrounded.
func Normalize(v int16) float64 {
	x := (float64(v) + 32768) / int16Span * 255
	return math.Min(math.Max(x, 0), 255)
}

// HSLToRGB converts a hue in turns, saturation and lightness in [0, 1] to
// 8-bit RGB. Hues outside [0, 1) wrap.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := toByte(l * 255)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r = toByte(hueToRGB(p, q, h+1.0/3) * 255)
	g = toByte(hueToRGB(p, q, h) * 255)
	b = toByte(hueToRGB(p, q, h-1.0/3) * 255)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	t -= math.Floor(t)
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// toByte rounds half away from zero and clamps to [0, 255].
func toByte(x float64) uint8 {
	x = math.Round(x)
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
