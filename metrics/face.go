package metrics

import (
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/rasteredit/style"
)

// FaceMeasurer measures text by summing glyph advances from a registered
// font program. When the style's family has no registered font it degrades
// to a fixed-advance estimate so measurement never blocks editing.
type FaceMeasurer struct {
	collection *Collection
	fallback   TableMeasurer

	mu  sync.Mutex
	buf sfnt.Buffer
}

// NewFaceMeasurer builds a measurer over the given font collection.
func NewFaceMeasurer(collection *Collection) *FaceMeasurer {
	return &FaceMeasurer{collection: collection}
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(text string, st style.TextStyle) Extent {
	n := st.Normalize()
	f := m.collection.Font(n)
	if f == nil {
		return m.fallback.Measure(text, st)
	}

	ppem := fixed.Int26_6(n.FontSize * 64)
	var width fixed.Int26_6

	m.mu.Lock()
	for _, r := range text {
		gi, err := f.GlyphIndex(&m.buf, r)
		if err != nil || gi == 0 {
			// Unknown glyph: fall back to a half-em advance.
			width += ppem / 2
			continue
		}
		adv, err := f.GlyphAdvance(&m.buf, gi, ppem, xfont.HintingNone)
		if err != nil {
			width += ppem / 2
			continue
		}
		width += adv
	}
	m.mu.Unlock()

	return Extent{
		Width:  float64(width) / 64.0,
		Height: heightFor(st),
	}
}
