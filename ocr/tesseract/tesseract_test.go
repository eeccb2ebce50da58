package tesseract

import (
	"testing"

	"github.com/wudi/rasteredit/ocr"
)

func TestGroupLinesSplitsOnBaseline(t *testing.T) {
	words := []ocr.TextWord{
		{Text: "Total", Bounds: ocr.Region{X: 10, Y: 10, Width: 40, Height: 12}, Confidence: 0.9},
		{Text: "due", Bounds: ocr.Region{X: 55, Y: 11, Width: 30, Height: 11}, Confidence: 0.8},
		{Text: "42.00", Bounds: ocr.Region{X: 10, Y: 30, Width: 45, Height: 12}, Confidence: 0.95},
	}
	lines := groupLines(words)
	if len(lines) != 2 {
		t.Fatalf("groupLines() returned %d lines, want 2", len(lines))
	}
	if lines[0].Text != "Total due" {
		t.Fatalf("first line = %q", lines[0].Text)
	}
	if lines[1].Text != "42.00" {
		t.Fatalf("second line = %q", lines[1].Text)
	}
	if got := lines[0].Bounds; got.X != 10 || got.Width != 75 {
		t.Fatalf("first line bounds = %+v", got)
	}
}

func TestMergeBoundsEmpty(t *testing.T) {
	if got := mergeBounds(nil); !got.IsEmpty() {
		t.Fatalf("mergeBounds(nil) = %+v, want empty", got)
	}
}

func TestCropImagePassThrough(t *testing.T) {
	data := []byte{1, 2, 3}
	out, err := cropImage(data, nil)
	if err != nil {
		t.Fatalf("cropImage() error = %v", err)
	}
	if &out[0] != &data[0] {
		t.Fatalf("nil region should pass the payload through untouched")
	}
}
