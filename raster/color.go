package raster

import (
	"fmt"
	"image/color"
	"strings"
)

// White is the fallback background color used when detection degrades.
const White = "#ffffff"

// ParseHex parses a #rgb or #rrggbb color string into an opaque RGBA value.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}, nil
	case 6:
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	default:
		return color.RGBA{}, fmt.Errorf("parse color %q: want #rgb or #rrggbb", s)
	}
}

// FormatHex renders an RGBA value as a lowercase #rrggbb string. Alpha is
// dropped.
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Brightness returns the perceived luminance of c in [0, 255].
func Brightness(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Hue returns the HSV hue of c normalized to [0, 1). Gray colors report 0.
func Hue(c color.RGBA) float64 {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	d := max - min
	if d == 0 {
		return 0
	}
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6
}
