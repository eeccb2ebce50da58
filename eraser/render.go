package eraser

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/rasteredit/observability"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// RenderText draws text onto the overlay with the glyph box anchored at
// (x, y): y is the top of the line, the baseline sits one ascent below it.
// The face is resolved from the font collection by family, weight and
// slant; when the family has no registered font the bitmap fallback face is
// used so rendering degrades instead of blocking the edit.
func (e *Eraser) RenderText(text string, x, y int, st style.TextStyle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay == nil {
		return fmt.Errorf("render text: eraser not initialized")
	}
	if text == "" {
		return nil
	}
	n := st.Normalize()
	fill, err := raster.ParseHex(n.Color)
	if err != nil {
		return fmt.Errorf("render text: %w", err)
	}

	face, err := e.fonts.Face(n)
	if err != nil {
		e.logger.Debug("eraser: no face for style, using bitmap fallback",
			observability.String("style", n.Descriptor()))
		face = basicfont.Face7x13
	}

	ascent := face.Metrics().Ascent
	d := font.Drawer{
		Dst:  e.overlay.Image(),
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + ascent},
	}
	d.DrawString(text)

	if n.Decoration == "underline" {
		e.drawUnderline(x, y, d.Dot.X, ascent, fill)
	}
	return nil
}

// drawUnderline paints a 1px rule just under the baseline, from the anchor
// to the drawer's final dot.
func (e *Eraser) drawUnderline(x, y int, endX fixed.Int26_6, ascent fixed.Int26_6, fill color.RGBA) {
	lineY := y + ascent.Ceil() + 1
	for px := x; px < int(math.Ceil(float64(endX)/64)); px++ {
		e.overlay.Set(px, lineY, fill)
	}
}
