// Package reflow decides whether replacement text fits its original region
// and produces truncated or wrapped alternatives when it does not. The
// engine is a pure function over its inputs: it owns no surface and never
// returns an error, so degenerate input still yields a well-formed result.
package reflow

import (
	"strings"

	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// Result reports the outcome of a reflow calculation.
type Result struct {
	Fits     bool
	Overflow float64
	// TruncatedText is set only when the text does not fit.
	TruncatedText string
	// Lines is set by WrapText-based flows.
	Lines []string
	// AdjustedPosition carries a shifted anchor when a layout cascade moved
	// the block; nil when the position is unchanged.
	AdjustedPosition *Position
}

// Position is a block anchor in surface coordinates.
type Position struct {
	X float64
	Y float64
}

// Block is a positioned text run on a line, the unit of layout cascades.
type Block struct {
	ID    string
	X     float64
	Y     float64
	Width float64
	Text  string
}

// Engine performs text-fit calculations against a Measurer.
type Engine struct {
	measurer metrics.Measurer
}

// NewEngine builds a reflow engine over the given measurer.
func NewEngine(measurer metrics.Measurer) *Engine {
	return &Engine{measurer: measurer}
}

// TextWidth returns the measured width of text under the style.
func (e *Engine) TextWidth(text string, st style.TextStyle) float64 {
	return e.measurer.Measure(text, st).Width
}

// CalculateReflow compares the replacement text against the region width.
// A fitting replacement reports {Fits: true, Overflow: 0}; an overflowing
// one carries the positive overflow and a truncated alternative.
func (e *Engine) CalculateReflow(originalText, newText string, bounds raster.Rect, st style.TextStyle) Result {
	overflow := e.TextWidth(newText, st) - float64(bounds.Width)
	if overflow <= 0 {
		return Result{Fits: true}
	}
	return Result{
		Fits:          false,
		Overflow:      overflow,
		TruncatedText: e.TruncateToFit(newText, float64(bounds.Width), st),
	}
}

// TruncateToFit shortens text until it fits maxWidth with an ellipsis. It
// shares the single truncation implementation with the eraser.
func (e *Engine) TruncateToFit(text string, maxWidth float64, st style.TextStyle) string {
	return metrics.TruncateToWidth(e.measurer, text, maxWidth, st)
}

// WrapText greedily packs words into lines no wider than maxWidth. A word
// that alone exceeds maxWidth is split at character level so no line ever
// exceeds the limit by more than one rune advance.
func (e *Engine) WrapText(text string, maxWidth float64, st style.TextStyle) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := ""
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if e.TextWidth(candidate, st) <= maxWidth {
			current = candidate
			continue
		}
		flush()
		if e.TextWidth(word, st) <= maxWidth {
			current = word
			continue
		}
		for _, part := range e.splitWord(word, maxWidth, st) {
			lines = append(lines, part)
		}
		if len(lines) > 0 {
			// The last fragment may still accept following words.
			current = lines[len(lines)-1]
			lines = lines[:len(lines)-1]
		}
	}
	flush()
	return lines
}

// splitWord breaks an oversized word into maxWidth-sized fragments.
func (e *Engine) splitWord(word string, maxWidth float64, st style.TextStyle) []string {
	var parts []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && e.TextWidth(string(next), st) > maxWidth {
			parts = append(parts, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		parts = append(parts, string(cur))
	}
	return parts
}

// FollowingTextAdjustment is the horizontal shift a replacement imposes on
// the blocks after it: the width delta between the new and original text.
func (e *Engine) FollowingTextAdjustment(originalText, newText string, st style.TextStyle) float64 {
	return e.TextWidth(newText, st) - e.TextWidth(originalText, st)
}

// AdjustFollowingBlocks shifts every block positioned strictly after startX
// by delta. Blocks at or before the boundary pass through unchanged. The
// input slice is not mutated.
func (e *Engine) AdjustFollowingBlocks(blocks []Block, startX, delta float64) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		if b.X > startX {
			b.X += delta
		}
		out[i] = b
	}
	return out
}

// OptimalFontSize binary-searches integer sizes in [minSize, min(maxSize,
// style size)] for the largest size at which text fits maxWidth. When even
// minSize overflows, the original size is returned unchanged.
func (e *Engine) OptimalFontSize(text string, maxWidth float64, st style.TextStyle, minSize, maxSize int) float64 {
	n := st.Normalize()
	if minSize < 1 {
		minSize = 1
	}
	hi := maxSize
	if int(n.FontSize) < hi {
		hi = int(n.FontSize)
	}
	lo := minSize
	best := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		trial := n
		trial.FontSize = float64(mid)
		if e.TextWidth(text, trial) <= maxWidth {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best < 0 {
		return n.FontSize
	}
	return float64(best)
}
