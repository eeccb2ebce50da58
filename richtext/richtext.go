// Package richtext converts lightly marked-up replacement text (markdown or
// HTML fragments) into a flat run of styled spans the renderer can paint one
// after another.
package richtext

import (
	"strings"

	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/style"
)

// Span is a run of text sharing a single resolved style.
type Span struct {
	Text  string
	Style style.TextStyle
}

// PlainText concatenates the span texts without styling.
func PlainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Width measures the total advance of the spans, each in its own style.
func Width(m metrics.Measurer, spans []Span) float64 {
	var w float64
	for _, s := range spans {
		w += m.Measure(s.Text, s.Style).Width
	}
	return w
}

// mergeAdjacent collapses neighboring spans whose styles are identical, so
// "a**b**" and "a" + bold("b") produce minimal runs.
func mergeAdjacent(spans []Span) []Span {
	out := spans[:0]
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if len(out) > 0 && out[len(out)-1].Style == s.Style {
			out[len(out)-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
