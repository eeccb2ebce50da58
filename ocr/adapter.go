package ocr

import (
	"bytes"
	"fmt"
	"image/png"
	"math"

	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// InputFromSurface converts a rendered page surface into an OCR input using
// PNG encoding. The generated ID is stable for a page number to simplify
// correlation with downstream results.
func InputFromSurface(page int, surface *raster.Surface, opts ...InputOption) (Input, error) {
	if surface == nil {
		return Input{}, fmt.Errorf("encode page %d: surface is nil", page)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, surface.Image()); err != nil {
		return Input{}, fmt.Errorf("encode page %d: %w", page, err)
	}
	in := Input{
		ID:     fmt.Sprintf("page-%d", page),
		Image:  buf.Bytes(),
		Format: ImageFormatPNG,
		Page:   page,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

// Candidate is a recognized text line expressed in the editor's region
// vocabulary: the starting point for a user-driven replacement.
type Candidate struct {
	BlockID    string
	Text       string
	X, Y       float64
	Bounds     raster.Rect
	Style      style.TextStyle
	Confidence float64
}

// Candidates flattens a recognition result into per-line edit candidates.
// Lines below minConfidence are skipped; a zero minConfidence keeps
// everything. The font size is estimated from the line height and the
// default line-height ratio.
func Candidates(res Result, minConfidence float64) []Candidate {
	base := style.Default()
	var out []Candidate
	for bi, block := range res.Blocks {
		for li, line := range block.Lines {
			if line.Text == "" || line.Confidence < minConfidence {
				continue
			}
			st := base
			if size := math.Round(line.Bounds.Height / base.LineHeight); size > 0 {
				st.FontSize = size
			}
			out = append(out, Candidate{
				BlockID:    fmt.Sprintf("%s-b%d-l%d", res.InputID, bi, li),
				Text:       line.Text,
				X:          line.Bounds.X,
				Y:          line.Bounds.Y,
				Bounds:     regionToRect(line.Bounds),
				Style:      st,
				Confidence: line.Confidence,
			})
		}
	}
	return out
}

func regionToRect(r Region) raster.Rect {
	x := int(math.Floor(r.X))
	y := int(math.Floor(r.Y))
	return raster.Rect{
		X:      x,
		Y:      y,
		Width:  int(math.Ceil(r.X+r.Width)) - x,
		Height: int(math.Ceil(r.Y+r.Height)) - y,
	}
}
