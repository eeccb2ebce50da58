// Package style models the typographic attributes attached to an edited text
// region.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// FontWeight is a tagged weight value. The zero value is the normal weight.
// Modeling the weight as a concrete numeric value (rather than a free-form
// string-or-number union) keeps style comparisons exhaustive.
type FontWeight struct {
	value uint16
}

var (
	WeightNormal = FontWeight{value: 400}
	WeightBold   = FontWeight{value: 700}
)

// Numeric returns a weight with an explicit CSS-style numeric value.
func Numeric(v uint16) FontWeight {
	if v == 0 {
		v = 400
	}
	return FontWeight{value: v}
}

// ParseWeight accepts "normal", "bold" or a numeric string.
func ParseWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return WeightNormal, nil
	case "bold":
		return WeightBold, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return FontWeight{}, fmt.Errorf("parse font weight %q: %w", s, err)
	}
	return Numeric(uint16(n)), nil
}

// Value returns the numeric weight. The zero FontWeight reports 400.
func (w FontWeight) Value() uint16 {
	if w.value == 0 {
		return 400
	}
	return w.value
}

// Bold reports whether the weight renders bold (≥ 600).
func (w FontWeight) Bold() bool { return w.Value() >= 600 }

func (w FontWeight) String() string {
	switch w.Value() {
	case 400:
		return "normal"
	case 700:
		return "bold"
	default:
		return strconv.Itoa(int(w.Value()))
	}
}

// MarshalText implements encoding.TextMarshaler so weights survive the
// export snapshot unchanged.
func (w FontWeight) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *FontWeight) UnmarshalText(b []byte) error {
	parsed, err := ParseWeight(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// FontStyle selects the face slant.
type FontStyle string

const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

// TextStyle describes how replacement text is measured and rendered.
type TextStyle struct {
	FontFamily      string
	FontSize        float64
	Weight          FontWeight
	Style           FontStyle
	Decoration      string
	Color           string
	BackgroundColor string
	LineHeight      float64
}

// Default returns the baseline style applied when a caller omits attributes.
func Default() TextStyle {
	return TextStyle{
		FontFamily: "Helvetica",
		FontSize:   12,
		Weight:     WeightNormal,
		Style:      StyleNormal,
		Color:      "#000000",
		LineHeight: 1.2,
	}
}

// Normalize fills zero-valued fields from the defaults so downstream
// measurement never divides by a missing size or line height.
func (s TextStyle) Normalize() TextStyle {
	d := Default()
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.Style == "" {
		s.Style = d.Style
	}
	if s.Color == "" {
		s.Color = d.Color
	}
	if s.LineHeight <= 0 {
		s.LineHeight = d.LineHeight
	}
	return s
}

// Merge overlays the non-zero fields of o onto s and returns the result.
func (s TextStyle) Merge(o TextStyle) TextStyle {
	if o.FontFamily != "" {
		s.FontFamily = o.FontFamily
	}
	if o.FontSize > 0 {
		s.FontSize = o.FontSize
	}
	if o.Weight != (FontWeight{}) {
		s.Weight = o.Weight
	}
	if o.Style != "" {
		s.Style = o.Style
	}
	if o.Decoration != "" {
		s.Decoration = o.Decoration
	}
	if o.Color != "" {
		s.Color = o.Color
	}
	if o.BackgroundColor != "" {
		s.BackgroundColor = o.BackgroundColor
	}
	if o.LineHeight > 0 {
		s.LineHeight = o.LineHeight
	}
	return s
}

// Descriptor renders the style as a CSS-like font shorthand, useful for
// logging and for keying measurement caches.
func (s TextStyle) Descriptor() string {
	n := s.Normalize()
	return fmt.Sprintf("%s %s %gpx %s", n.Style, n.Weight, n.FontSize, n.FontFamily)
}
