// Package raster provides the addressable RGBA pixel surface that the edit
// compositing engine operates on, together with the rectangle geometry and
// color helpers shared by the other packages.
package raster

import "fmt"

// InvalidRegionError reports a read or write against a region that falls
// outside the surface bounds. It indicates a caller logic error and is never
// silently absorbed.
type InvalidRegionError struct {
	Region Rect
	Width  int
	Height int
	Op     string
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("%s: region %v outside surface %dx%d", e.Op, e.Region, e.Width, e.Height)
}
