package reflow

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// testStyle measures 6px per rune with the table measurer.
var testStyle = style.TextStyle{FontFamily: "Arial", FontSize: 10, LineHeight: 1.0}

func newTestEngine() *Engine {
	return NewEngine(metrics.TableMeasurer{})
}

func TestCalculateReflowFits(t *testing.T) {
	e := newTestEngine()
	bounds := raster.Rect{X: 0, Y: 0, Width: 200, Height: 20}
	st := style.TextStyle{FontFamily: "Arial", FontSize: 12, LineHeight: 1.0}

	res := e.CalculateReflow("Hello", "Hi", bounds, st)
	if !res.Fits || res.Overflow != 0 {
		t.Fatalf("CalculateReflow = %+v, want fits with zero overflow", res)
	}
	if res.TruncatedText != "" {
		t.Fatalf("fitting reflow must not carry truncated text, got %q", res.TruncatedText)
	}
}

func TestCalculateReflowOverflow(t *testing.T) {
	e := newTestEngine()
	bounds := raster.Rect{Width: 60, Height: 20}
	long := "this replacement is far too long"

	res := e.CalculateReflow("short", long, bounds, testStyle)
	if res.Fits {
		t.Fatalf("expected overflow, got %+v", res)
	}
	wantOverflow := e.TextWidth(long, testStyle) - 60
	if res.Overflow != wantOverflow {
		t.Fatalf("overflow = %f, want %f", res.Overflow, wantOverflow)
	}
	if res.TruncatedText == "" {
		t.Fatalf("overflowing reflow must carry a truncated alternative")
	}
	if w := e.TextWidth(res.TruncatedText, testStyle); w > 60 {
		t.Fatalf("truncated text width %f exceeds bounds 60", w)
	}
	if !strings.HasSuffix(res.TruncatedText, metrics.Ellipsis) {
		t.Fatalf("truncated text %q lacks ellipsis", res.TruncatedText)
	}
}

func TestCalculateReflowZeroWidthBounds(t *testing.T) {
	e := newTestEngine()
	res := e.CalculateReflow("a", "abc", raster.Rect{Width: 0, Height: 10}, testStyle)
	if res.Fits {
		t.Fatalf("nonempty text cannot fit zero-width bounds")
	}
	if res.TruncatedText != metrics.Ellipsis {
		t.Fatalf("zero-width truncation = %q, want bare ellipsis", res.TruncatedText)
	}
}

func TestCalculateReflowEmptyText(t *testing.T) {
	e := newTestEngine()
	res := e.CalculateReflow("old", "", raster.Rect{Width: 10, Height: 10}, testStyle)
	if !res.Fits || res.Overflow != 0 {
		t.Fatalf("empty replacement should fit, got %+v", res)
	}
}

func TestTruncatePropertyWidthBound(t *testing.T) {
	e := newTestEngine()
	texts := []string{"a", "hello world", "abcdefghijklmnopqrstuvwxyz", "ää ää ää"}
	widths := []float64{5, 12, 30, 66, 100}
	for _, text := range texts {
		for _, maxWidth := range widths {
			got := e.TruncateToFit(text, maxWidth, testStyle)
			if e.TextWidth(text, testStyle) <= maxWidth {
				if got != text {
					t.Fatalf("fitting text %q was altered to %q", text, got)
				}
				continue
			}
			if got == "" {
				t.Fatalf("truncation produced empty string for %q at %f", text, maxWidth)
			}
			ellipsisW := e.TextWidth(metrics.Ellipsis, testStyle)
			if maxWidth >= ellipsisW && e.TextWidth(got, testStyle) > maxWidth {
				t.Fatalf("truncated %q of %q measures %f > %f", got, text, e.TextWidth(got, testStyle), maxWidth)
			}
		}
	}
}

func TestWrapTextGreedy(t *testing.T) {
	e := newTestEngine()
	// 6px per rune: "aaa bb c" with max 42 → "aaa bb" (6 runes = 36) then "c".
	lines := e.WrapText("aaa bb c", 42, testStyle)
	want := []string{"aaa bb", "c"}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("WrapText mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapTextOversizedWord(t *testing.T) {
	e := newTestEngine()
	lines := e.WrapText("abcdefghij", 30, testStyle) // 5 runes per line
	for _, line := range lines {
		if e.TextWidth(line, testStyle) > 30 {
			t.Fatalf("line %q wider than limit", line)
		}
	}
	if got := strings.Join(lines, ""); got != "abcdefghij" {
		t.Fatalf("character split lost content: %q", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	e := newTestEngine()
	if lines := e.WrapText("   ", 100, testStyle); lines != nil {
		t.Fatalf("blank input should wrap to nil, got %v", lines)
	}
}

func TestFollowingTextAdjustment(t *testing.T) {
	e := newTestEngine()
	// "Hi" (2) vs "Hello" (5): delta = (2-5)*6 = -18.
	if got := e.FollowingTextAdjustment("Hello", "Hi", testStyle); got != -18 {
		t.Fatalf("FollowingTextAdjustment = %f, want -18", got)
	}
}

func TestAdjustFollowingBlocksBoundaryExclusive(t *testing.T) {
	e := newTestEngine()
	blocks := []Block{{ID: "a", X: 10}, {ID: "b", X: 40}, {ID: "c", X: 80}, {ID: "d", X: 30}}
	got := e.AdjustFollowingBlocks(blocks, 30, 15)
	want := []Block{{ID: "a", X: 10}, {ID: "b", X: 55}, {ID: "c", X: 95}, {ID: "d", X: 30}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AdjustFollowingBlocks mismatch (-want +got):\n%s", diff)
	}
	// Input slice is untouched.
	if blocks[1].X != 40 {
		t.Fatalf("input slice mutated: %+v", blocks[1])
	}
}

func TestOptimalFontSize(t *testing.T) {
	e := newTestEngine()
	st := style.TextStyle{FontFamily: "Arial", FontSize: 72, LineHeight: 1.0}
	// Width = 0.6 * size * runes. For "abcdefgh" (8 runes) and max 120:
	// size ≤ 120/(0.6*8) = 25.
	got := e.OptimalFontSize("abcdefgh", 120, st, 6, 72)
	if got != 25 {
		t.Fatalf("OptimalFontSize = %f, want 25", got)
	}
}

func TestOptimalFontSizeCappedByStyle(t *testing.T) {
	e := newTestEngine()
	st := style.TextStyle{FontFamily: "Arial", FontSize: 10, LineHeight: 1.0}
	// Even at size 10 the text fits comfortably; the search must not exceed
	// the style's own size.
	if got := e.OptimalFontSize("ab", 1000, st, 6, 72); got != 10 {
		t.Fatalf("OptimalFontSize = %f, want 10 (style cap)", got)
	}
}

func TestOptimalFontSizeDegenerate(t *testing.T) {
	e := newTestEngine()
	st := style.TextStyle{FontFamily: "Arial", FontSize: 30, LineHeight: 1.0}
	// Even minSize 6 overflows a 2px budget; original size comes back.
	if got := e.OptimalFontSize("abcdefgh", 2, st, 6, 72); got != 30 {
		t.Fatalf("OptimalFontSize degenerate = %f, want 30", got)
	}
}
