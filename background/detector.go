// Package background infers the color and texture behind a text region by
// sampling the pixels around it. Detection is deliberately fail-soft: any
// sampling failure degrades to a documented default rather than blocking an
// edit.
package background

import (
	"image/color"

	"github.com/wudi/rasteredit/observability"
	"github.com/wudi/rasteredit/raster"
)

// Kind classifies the texture behind a region.
type Kind string

const (
	KindSolid    Kind = "solid"
	KindGradient Kind = "gradient"
	KindPattern  Kind = "pattern"
	KindImage    Kind = "image"
)

// Result is the outcome of a background detection pass.
type Result struct {
	Color      string
	Kind       Kind
	Confidence float64
}

// DefaultResult is returned whenever no valid samples can be collected.
func DefaultResult() Result {
	return Result{Color: raster.White, Kind: KindSolid, Confidence: 1.0}
}

const (
	defaultPadding      = 5
	stripThickness      = 5
	samplesPerStrip     = 50
	clusterDistance     = 30.0
	alphaThreshold      = 128
	solidShare          = 0.7
	gradientShare       = 0.4
	gradientHueDelta    = 0.3
	gradientBrightStep  = 20.0
	gradientMaxClusters = 3
	imageMinClusters    = 5
)

// Detector samples border strips around a region and clusters the colors it
// finds. It holds no per-page state and is safe for concurrent use against
// read-only surfaces.
type Detector struct {
	padding int
	logger  observability.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithPadding overrides the gap between the region and the sampled strips.
func WithPadding(padding int) Option {
	return func(d *Detector) {
		if padding >= 0 {
			d.padding = padding
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger observability.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDetector constructs a Detector with optional configuration.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		padding: defaultPadding,
		logger:  observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect infers the background behind bbox by sampling four 5px border
// strips placed just outside the region expanded by the configured padding.
// Strips that fall fully outside the surface are skipped. If no strip yields
// a valid sample, the documented default is returned; Detect never fails.
func (d *Detector) Detect(surface *raster.Surface, bbox raster.Rect) Result {
	if surface == nil || bbox.Width < 0 || bbox.Height < 0 {
		return DefaultResult()
	}

	samples := collectSamples(surface, borderStrips(bbox.Expand(d.padding)))
	if len(samples) == 0 {
		d.logger.Debug("background: no valid samples, using default",
			observability.String("region", bbox.String()))
		return DefaultResult()
	}

	clusters := clusterSamples(samples, clusterDistance)
	dom := dominant(clusters)
	share := float64(dom.count) / float64(len(samples))

	res := Result{
		Color:      raster.FormatHex(dom.color()),
		Kind:       classify(clusters, share),
		Confidence: share,
	}
	d.logger.Debug("background: detected",
		observability.String("color", res.Color),
		observability.String("kind", string(res.Kind)),
		observability.Float64("confidence", res.Confidence),
		observability.Int("clusters", len(clusters)))
	return res
}

// classify applies the texture policy in priority order.
func classify(clusters []*cluster, dominantShare float64) Kind {
	switch {
	case len(clusters) <= 1 || dominantShare > solidShare:
		return KindSolid
	case len(clusters) <= gradientMaxClusters && dominantShare > gradientShare &&
		gradientLike(clusters, gradientHueDelta, gradientBrightStep):
		return KindGradient
	case len(clusters) > imageMinClusters:
		return KindImage
	default:
		return KindPattern
	}
}

// borderStrips returns the four strips surrounding the (already padded)
// region: top, bottom, left, right.
func borderStrips(outer raster.Rect) []raster.Rect {
	return []raster.Rect{
		{X: outer.X, Y: outer.Y - stripThickness, Width: outer.Width, Height: stripThickness},
		{X: outer.X, Y: outer.MaxY(), Width: outer.Width, Height: stripThickness},
		{X: outer.X - stripThickness, Y: outer.Y, Width: stripThickness, Height: outer.Height},
		{X: outer.MaxX(), Y: outer.Y, Width: stripThickness, Height: outer.Height},
	}
}

// collectSamples reads each strip at a fixed stride targeting roughly
// samplesPerStrip samples, skipping mostly transparent pixels.
func collectSamples(surface *raster.Surface, strips []raster.Rect) []sample {
	var samples []sample
	for _, strip := range strips {
		clipped := strip.Intersect(surface.Width, surface.Height)
		if clipped.Empty() {
			continue
		}
		total := clipped.Width * clipped.Height
		stride := total / samplesPerStrip
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < total; i += stride {
			x := clipped.X + i%clipped.Width
			y := clipped.Y + i/clipped.Width
			c, ok := surface.At(x, y)
			if !ok || c.A < alphaThreshold {
				continue
			}
			samples = append(samples, sample{r: float64(c.R), g: float64(c.G), b: float64(c.B)})
		}
	}
	return samples
}

// BlendedColor is the fallback path when border sampling is unusable: it
// averages the pixels on the inside perimeter of bbox itself. Any read
// failure degrades to the default color.
func (d *Detector) BlendedColor(surface *raster.Surface, bbox raster.Rect) string {
	if surface == nil {
		return raster.White
	}
	clipped := bbox.Intersect(surface.Width, surface.Height)
	if clipped.Empty() {
		return raster.White
	}

	var rSum, gSum, bSum, n float64
	visit := func(x, y int) {
		c, ok := surface.At(x, y)
		if !ok || c.A < alphaThreshold {
			return
		}
		rSum += float64(c.R)
		gSum += float64(c.G)
		bSum += float64(c.B)
		n++
	}
	for x := clipped.X; x < clipped.MaxX(); x++ {
		visit(x, clipped.Y)
		if clipped.Height > 1 {
			visit(x, clipped.MaxY()-1)
		}
	}
	for y := clipped.Y + 1; y < clipped.MaxY()-1; y++ {
		visit(clipped.X, y)
		if clipped.Width > 1 {
			visit(clipped.MaxX()-1, y)
		}
	}
	if n == 0 {
		return raster.White
	}
	avg := color.RGBA{
		R: uint8(rSum/n + 0.5),
		G: uint8(gSum/n + 0.5),
		B: uint8(bSum/n + 0.5),
		A: 255,
	}
	return raster.FormatHex(avg)
}
