package background

import (
	"image/color"
	"math"
	"sort"

	"github.com/wudi/rasteredit/raster"
)

// sample is one border pixel that passed the alpha threshold.
type sample struct {
	r, g, b float64
}

// cluster accumulates samples whose RGB distance to the running average
// stays below the clustering threshold.
type cluster struct {
	r, g, b float64 // running average
	count   int
}

func (c *cluster) add(s sample) {
	n := float64(c.count)
	c.r = (c.r*n + s.r) / (n + 1)
	c.g = (c.g*n + s.g) / (n + 1)
	c.b = (c.b*n + s.b) / (n + 1)
	c.count++
}

func (c *cluster) distance(s sample) float64 {
	dr := c.r - s.r
	dg := c.g - s.g
	db := c.b - s.b
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (c *cluster) color() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.r)),
		G: uint8(math.Round(c.g)),
		B: uint8(math.Round(c.b)),
		A: 255,
	}
}

// clusterSamples assigns each sample to the first cluster within maxDist of
// its running average, seeding a new cluster otherwise. Greedy and O(n·k),
// which is fine for the fixed ~200-sample budget per detection call.
func clusterSamples(samples []sample, maxDist float64) []*cluster {
	var clusters []*cluster
	for _, s := range samples {
		placed := false
		for _, c := range clusters {
			if c.distance(s) < maxDist {
				c.add(s)
				placed = true
				break
			}
		}
		if !placed {
			nc := &cluster{}
			nc.add(s)
			clusters = append(clusters, nc)
		}
	}
	return clusters
}

// dominant returns the cluster with the highest sample count.
func dominant(clusters []*cluster) *cluster {
	var best *cluster
	for _, c := range clusters {
		if best == nil || c.count > best.count {
			best = c
		}
	}
	return best
}

// gradientLike reports whether the clusters look like steps of a single-hue
// gradient: hues within hueDelta of the dominant axis and brightness rising
// by at least brightStep between adjacent clusters.
func gradientLike(clusters []*cluster, hueDelta, brightStep float64) bool {
	if len(clusters) < 2 {
		return false
	}
	sorted := make([]*cluster, len(clusters))
	copy(sorted, clusters)
	sort.Slice(sorted, func(i, j int) bool {
		return raster.Brightness(sorted[i].color()) < raster.Brightness(sorted[j].color())
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].color(), sorted[i].color()
		if hueDistance(raster.Hue(prev), raster.Hue(cur)) >= hueDelta {
			return false
		}
		if raster.Brightness(cur)-raster.Brightness(prev) < brightStep {
			return false
		}
	}
	return true
}

// hueDistance measures hue separation on the circular [0,1) scale.
func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 0.5 {
		d = 1 - d
	}
	return d
}
