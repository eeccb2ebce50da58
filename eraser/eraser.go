// Package eraser owns the overlay surface that carries every erasure and
// replacement-text pixel for the current page. The original page surface is
// never touched; the visible result is produced by compositing the overlay
// on top of it.
package eraser

import (
	"fmt"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/observability"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// DefaultPadding is the number of pixels the erasure rectangle grows beyond
// the text bounding box on every side.
const DefaultPadding = 2

// Eraser paints erasures and replacement glyphs onto a persistent overlay
// surface. The overlay is a single shared mutable resource; all operations
// are serialized through an internal mutex so the single-writer discipline
// holds even if calls arrive from multiple goroutines.
type Eraser struct {
	mu       sync.Mutex
	overlay  *raster.Surface
	erased   map[string]raster.Rect
	measurer metrics.Measurer
	fonts    *metrics.Collection
	logger   observability.Logger
}

// Option configures an Eraser.
type Option func(*Eraser)

// WithFonts supplies the font collection used to rasterize replacement text.
func WithFonts(fonts *metrics.Collection) Option {
	return func(e *Eraser) {
		if fonts != nil {
			e.fonts = fonts
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger observability.Logger) Option {
	return func(e *Eraser) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an Eraser. The measurer backs Measure, CheckOverflow and
// Truncate so erasure-side measurement agrees with the reflow engine.
func New(measurer metrics.Measurer, opts ...Option) *Eraser {
	e := &Eraser{
		erased:   make(map[string]raster.Rect),
		measurer: measurer,
		fonts:    metrics.NewCollection(),
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize resets the overlay to a fully transparent surface of the given
// page dimensions and drops all tracked erasure regions. Call it once per
// page.
func (e *Eraser) Initialize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overlay = raster.NewSurface(width, height)
	e.erased = make(map[string]raster.Rect)
}

// Overlay returns the live overlay surface, or nil before Initialize.
// Callers must not mutate it; it is exposed for inspection and tests.
func (e *Eraser) Overlay() *raster.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.overlay
}

// Erase paints over bbox with the inferred background color using the
// default padding.
func (e *Eraser) Erase(editID string, bbox raster.Rect, bgColor string) error {
	return e.ErasePadded(editID, bbox, bgColor, DefaultPadding)
}

// ErasePadded expands bbox by padding on all sides (clamped to the surface),
// fills the expanded rectangle opaque with bgColor, and blends a 1px soft
// edge on the left and right borders so the fill does not leave a hard seam
// against the composited background. The expanded region is recorded under
// editID for later undo.
//
// The bounding box itself must lie inside the surface; a region outside the
// page is a caller logic error and fails fast.
func (e *Eraser) ErasePadded(editID string, bbox raster.Rect, bgColor string, padding int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay == nil {
		return fmt.Errorf("erase %s: eraser not initialized", editID)
	}
	if err := e.overlay.CheckRegion("erase", bbox); err != nil {
		return err
	}
	c, err := raster.ParseHex(bgColor)
	if err != nil {
		return fmt.Errorf("erase %s: %w", editID, err)
	}
	if padding < 0 {
		padding = 0
	}

	region := bbox.Expand(padding).Intersect(e.overlay.Width, e.overlay.Height)
	if region.Empty() {
		// Zero-sized box with no padding: nothing to paint.
		return nil
	}
	if err := e.overlay.Fill(region, c); err != nil {
		return err
	}
	e.softenEdges(region, c)
	e.erased[editID] = region

	e.logger.Debug("eraser: erased region",
		observability.String("edit", editID),
		observability.String("region", region.String()),
		observability.String("color", bgColor))
	return nil
}

// softenEdges replaces the outermost left and right columns of the filled
// region with a half-transparent step of the fill color, the 1px linear
// ramp from transparent to opaque. Pixel values are stored premultiplied to
// match the surface semantics.
func (e *Eraser) softenEdges(region raster.Rect, c color.RGBA) {
	if region.Width < 3 {
		return
	}
	soft := color.RGBA{
		R: uint8(uint16(c.R) * 128 / 255),
		G: uint8(uint16(c.G) * 128 / 255),
		B: uint8(uint16(c.B) * 128 / 255),
		A: 128,
	}
	for y := region.Y; y < region.MaxY(); y++ {
		e.overlay.Set(region.X, y, soft)
		e.overlay.Set(region.MaxX()-1, y, soft)
	}
}

// Measure returns the extent of text under the style. Height is the font
// size scaled by the line height.
func (e *Eraser) Measure(text string, st style.TextStyle) metrics.Extent {
	return e.measurer.Measure(text, st)
}

// CheckOverflow reports whether text fits within maxWidth and by how much
// it overflows.
func (e *Eraser) CheckOverflow(text string, st style.TextStyle, maxWidth float64) (fits bool, overflow float64) {
	w := e.measurer.Measure(text, st).Width
	if w <= maxWidth {
		return true, 0
	}
	return false, w - maxWidth
}

// Truncate shortens text to fit maxWidth with an ellipsis appended.
func (e *Eraser) Truncate(text string, st style.TextStyle, maxWidth float64) string {
	return metrics.TruncateToWidth(e.measurer, text, maxWidth, st)
}

// Composite draws the original surface and then the overlay onto a freshly
// allocated surface of identical dimensions. The original is never mutated,
// and repeated calls with no intervening overlay mutation are
// pixel-identical.
func (e *Eraser) Composite(original *raster.Surface) (*raster.Surface, error) {
	if original == nil {
		return nil, fmt.Errorf("composite: original surface is nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	out := raster.NewSurface(original.Width, original.Height)
	dst := out.Image()
	draw.Copy(dst, dst.Rect.Min, original.Image(), original.Image().Rect, draw.Src, nil)
	if e.overlay != nil {
		if e.overlay.Width != original.Width || e.overlay.Height != original.Height {
			return nil, &raster.InvalidRegionError{
				Region: e.overlay.Bounds(),
				Width:  original.Width,
				Height: original.Height,
				Op:     "composite overlay",
			}
		}
		draw.Copy(dst, dst.Rect.Min, e.overlay.Image(), e.overlay.Image().Rect, draw.Over, nil)
	}
	return out, nil
}

// UndoErasure restores the tracked region for editID by stamping the
// corresponding original pixels back into the overlay, then forgets the
// region. The overlay still carries pixels there, but because compositing
// draws the overlay over the original, those pixels now reproduce the
// untouched page content exactly. This depends on the original-then-overlay
// compositing order.
func (e *Eraser) UndoErasure(editID string, original *raster.Surface) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay == nil {
		return fmt.Errorf("undo erasure %s: eraser not initialized", editID)
	}
	region, ok := e.erased[editID]
	if !ok {
		return fmt.Errorf("undo erasure %s: region not tracked", editID)
	}
	if err := e.overlay.CopyRegion(original, region); err != nil {
		return err
	}
	delete(e.erased, editID)
	e.logger.Debug("eraser: undid erasure",
		observability.String("edit", editID),
		observability.String("region", region.String()))
	return nil
}

// Clear resets the overlay to fully transparent and forgets all regions.
func (e *Eraser) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.overlay != nil {
		e.overlay.Clear()
	}
	e.erased = make(map[string]raster.Rect)
}

// ErasedRegions returns a copy of the tracked editID → region map.
func (e *Eraser) ErasedRegions() map[string]raster.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]raster.Rect, len(e.erased))
	for id, r := range e.erased {
		out[id] = r
	}
	return out
}

// Region returns the erasure region tracked for editID.
func (e *Eraser) Region(editID string) (raster.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.erased[editID]
	return r, ok
}
