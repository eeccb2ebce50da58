package metrics

import (
	"bytes"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/wudi/rasteredit/style"
)

// ShapingMeasurer measures text by running full HarfBuzz shaping over the
// registered font program. It is script and direction aware, so advances for
// Arabic, Hebrew or Indic text reflect the shaped glyph run rather than
// per-rune advances. Heavier than FaceMeasurer; intended for documents where
// ligatures and contextual forms change the measured width.
type ShapingMeasurer struct {
	collection *Collection
	fallback   *FaceMeasurer

	mu    sync.Mutex
	faces map[string]*gofont.Face
}

// NewShapingMeasurer builds a shaping measurer over the font collection.
func NewShapingMeasurer(collection *Collection) *ShapingMeasurer {
	return &ShapingMeasurer{
		collection: collection,
		fallback:   NewFaceMeasurer(collection),
		faces:      make(map[string]*gofont.Face),
	}
}

// Measure implements Measurer.
func (m *ShapingMeasurer) Measure(text string, st style.TextStyle) Extent {
	n := st.Normalize()
	face := m.face(n)
	if face == nil || text == "" {
		return m.fallback.Measure(text, st)
	}

	runes := []rune(text)
	script := detectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      face,
		Size:      fixed.Int26_6(n.FontSize * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}

	shaper := &shaping.HarfbuzzShaper{}
	output := shaper.Shape(input)

	var width fixed.Int26_6
	for _, g := range output.Glyphs {
		width += g.XAdvance
	}
	return Extent{
		Width:  float64(width) / 64.0,
		Height: heightFor(st),
	}
}

func (m *ShapingMeasurer) face(st style.TextStyle) *gofont.Face {
	data := m.collection.Data(st)
	if len(data) == 0 {
		return nil
	}
	key := st.Descriptor()
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[key]; ok {
		return f
	}
	f, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	m.faces[key] = f
	return f
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

// detectScript picks the script covering the most runes in the text,
// defaulting to Latin.
func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	maxCount := 0
	best := language.Latin
	for _, r := range runes {
		s := scriptFromRune(r)
		if s == language.Unknown {
			continue
		}
		counts[s]++
		if counts[s] > maxCount {
			maxCount = counts[s]
			best = s
		}
	}
	return best
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	case unicode.Is(unicode.Thai, r):
		return language.Thai
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	}
	return language.Unknown
}
