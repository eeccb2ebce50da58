package metrics

import "github.com/wudi/rasteredit/style"

// Ellipsis is the marker appended to truncated text.
const Ellipsis = "…"

// TruncateToWidth shortens text until it fits maxWidth with the ellipsis
// marker appended. Width for the marker is reserved up front; trailing runes
// are removed until the remainder fits. If even the marker alone does not
// fit, the marker is returned on its own. This is the single truncation
// implementation shared by the eraser and the reflow engine.
func TruncateToWidth(m Measurer, text string, maxWidth float64, st style.TextStyle) string {
	if m.Measure(text, st).Width <= maxWidth {
		return text
	}
	ellipsisWidth := m.Measure(Ellipsis, st).Width
	budget := maxWidth - ellipsisWidth
	if budget <= 0 {
		return Ellipsis
	}
	runes := []rune(text)
	for len(runes) > 0 && m.Measure(string(runes), st).Width > budget {
		runes = runes[:len(runes)-1]
	}
	if len(runes) == 0 {
		return Ellipsis
	}
	return string(runes) + Ellipsis
}
