package raster

import "fmt"

// Rect is an axis-aligned rectangle in surface pixel coordinates with the
// origin in the upper-left corner. Width and Height are never negative.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// Expand grows the rectangle by pad pixels on every side. A negative pad
// shrinks it; the result is clamped to zero size at minimum.
func (r Rect) Expand(pad int) Rect {
	out := Rect{X: r.X - pad, Y: r.Y - pad, Width: r.Width + 2*pad, Height: r.Height + 2*pad}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Intersect returns the overlap of r with the surface of the given
// dimensions. The result may be empty.
func (r Rect) Intersect(width, height int) Rect {
	x0, y0 := r.X, r.Y
	x1, y1 := r.MaxX(), r.MaxY()
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > width {
		x1 = width
	}
	if y1 > height {
		y1 = height
	}
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inside reports whether the rectangle lies entirely within a surface of the
// given dimensions.
func (r Rect) Inside(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.MaxX() <= width && r.MaxY() <= height
}
