package raster

import (
	"image"
	"image/color"

	"golang.org/x/crypto/blake2b"
)

// Surface is an addressable RGBA raster of fixed dimensions. A source
// surface holds a rendered page and is treated as immutable; the overlay
// surface owned by the eraser is the only mutable instance and starts fully
// transparent.
//
// The pixel buffer uses the same layout and semantics as image.RGBA
// (alpha-premultiplied, 4 bytes per pixel, row-major) so surfaces convert to
// and from the standard image types without copying.
type Surface struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewSurface allocates a fully transparent surface.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// FromImage copies an arbitrary image into a new surface.
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := NewSurface(b.Dx(), b.Dy())
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := s.offset(x, y)
			s.Pix[i] = uint8(r >> 8)
			s.Pix[i+1] = uint8(g >> 8)
			s.Pix[i+2] = uint8(bl >> 8)
			s.Pix[i+3] = uint8(a >> 8)
		}
	}
	return s
}

// Image exposes the surface as an *image.RGBA sharing the same pixel buffer.
func (s *Surface) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pix,
		Stride: 4 * s.Width,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	out := &Surface{Width: s.Width, Height: s.Height, Pix: make([]uint8, len(s.Pix))}
	copy(out.Pix, s.Pix)
	return out
}

// Bounds returns the surface extent as a Rect anchored at the origin.
func (s *Surface) Bounds() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

func (s *Surface) offset(x, y int) int { return 4 * (y*s.Width + x) }

// At returns the pixel at (x, y). The second result is false when the
// coordinates are outside the surface.
func (s *Surface) At(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return color.RGBA{}, false
	}
	i := s.offset(x, y)
	return color.RGBA{R: s.Pix[i], G: s.Pix[i+1], B: s.Pix[i+2], A: s.Pix[i+3]}, true
}

// Set writes the pixel at (x, y). Writes outside the surface are ignored;
// region-level operations validate bounds before descending to pixels.
func (s *Surface) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return
	}
	i := s.offset(x, y)
	s.Pix[i] = c.R
	s.Pix[i+1] = c.G
	s.Pix[i+2] = c.B
	s.Pix[i+3] = c.A
}

// CheckRegion validates that r lies entirely inside the surface and has
// non-negative dimensions.
func (s *Surface) CheckRegion(op string, r Rect) error {
	if r.Width < 0 || r.Height < 0 || !r.Inside(s.Width, s.Height) {
		return &InvalidRegionError{Region: r, Width: s.Width, Height: s.Height, Op: op}
	}
	return nil
}

// Fill paints the region with an opaque color. The region must be inside the
// surface.
func (s *Surface) Fill(r Rect, c color.RGBA) error {
	if err := s.CheckRegion("fill", r); err != nil {
		return err
	}
	for y := r.Y; y < r.MaxY(); y++ {
		i := s.offset(r.X, y)
		for x := r.X; x < r.MaxX(); x++ {
			s.Pix[i] = c.R
			s.Pix[i+1] = c.G
			s.Pix[i+2] = c.B
			s.Pix[i+3] = c.A
			i += 4
		}
	}
	return nil
}

// Clear resets every pixel to fully transparent.
func (s *Surface) Clear() {
	for i := range s.Pix {
		s.Pix[i] = 0
	}
}

// CopyRegion copies the pixels of region r from src into the same
// coordinates of s. Both surfaces must contain the region.
func (s *Surface) CopyRegion(src *Surface, r Rect) error {
	if err := s.CheckRegion("copy dst", r); err != nil {
		return err
	}
	if err := src.CheckRegion("copy src", r); err != nil {
		return err
	}
	rowLen := 4 * r.Width
	for y := r.Y; y < r.MaxY(); y++ {
		di := s.offset(r.X, y)
		si := src.offset(r.X, y)
		copy(s.Pix[di:di+rowLen], src.Pix[si:si+rowLen])
	}
	return nil
}

// Fingerprint returns a BLAKE2b digest of the region's pixels. Identical
// regions produce identical digests, which makes compositing idempotence
// checkable without pixel-by-pixel comparison.
func (s *Surface) Fingerprint(r Rect) ([blake2b.Size256]byte, error) {
	if err := s.CheckRegion("fingerprint", r); err != nil {
		return [blake2b.Size256]byte{}, err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return [blake2b.Size256]byte{}, err
	}
	rowLen := 4 * r.Width
	for y := r.Y; y < r.MaxY(); y++ {
		i := s.offset(r.X, y)
		h.Write(s.Pix[i : i+rowLen])
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
