// Package metrics provides the text-measurement capability the reflow and
// erasure engines depend on. Implementations share one contract: width is
// the sum of glyph advances for the styled text, height is the font size
// scaled by the line height.
package metrics

import "github.com/wudi/rasteredit/style"

// Extent is the measured footprint of a piece of text.
type Extent struct {
	Width  float64
	Height float64
}

// Measurer measures text against a style. Implementations are stateless or
// internally synchronized and safe for concurrent use.
type Measurer interface {
	Measure(text string, st style.TextStyle) Extent
}

// heightFor applies the shared height rule.
func heightFor(st style.TextStyle) float64 {
	n := st.Normalize()
	return n.FontSize * n.LineHeight
}

// TableMeasurer is a deterministic fixed-advance measurer. Every rune
// advances by Advance em (default 0.6). It backs tests and acts as the
// final fallback when no font data is registered.
type TableMeasurer struct {
	// Advance is the per-rune advance in em. Zero means 0.6.
	Advance float64
}

// Measure implements Measurer.
func (m TableMeasurer) Measure(text string, st style.TextStyle) Extent {
	adv := m.Advance
	if adv <= 0 {
		adv = 0.6
	}
	n := st.Normalize()
	count := 0
	for range text {
		count++
	}
	return Extent{
		Width:  float64(count) * adv * n.FontSize,
		Height: heightFor(st),
	}
}
