package metrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/wudi/rasteredit/style"
)

// Collection is a registry of parsed font programs keyed by family and face
// variant. It hands out sfnt fonts for measurement and opentype faces for
// rasterization, so the measuring and the drawing path always agree on
// metrics.
type Collection struct {
	mu    sync.RWMutex
	fonts map[faceKey]*entry
}

type faceKey struct {
	family string
	bold   bool
	italic bool
}

type entry struct {
	font *sfnt.Font
	data []byte

	facesMu sync.Mutex
	faces   map[float64]font.Face
}

// NewCollection returns an empty font registry.
func NewCollection() *Collection {
	return &Collection{fonts: make(map[faceKey]*entry)}
}

// Register parses a TrueType/OpenType font program and stores it under the
// given family and variant.
func (c *Collection) Register(family string, weight style.FontWeight, fs style.FontStyle, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("register %s: font data is empty", family)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("register %s: parse font: %w", family, err)
	}
	key := faceKey{family: family, bold: weight.Bold(), italic: fs == style.StyleItalic}
	c.mu.Lock()
	c.fonts[key] = &entry{font: f, data: data, faces: make(map[float64]font.Face)}
	c.mu.Unlock()
	return nil
}

// lookup resolves a style to the closest registered entry: exact variant,
// then the regular face of the family, then any single registered family.
func (c *Collection) lookup(st style.TextStyle) *entry {
	n := st.Normalize()
	key := faceKey{family: n.FontFamily, bold: n.Weight.Bold(), italic: n.Style == style.StyleItalic}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.fonts[key]; ok {
		return e
	}
	if e, ok := c.fonts[faceKey{family: n.FontFamily}]; ok {
		return e
	}
	if len(c.fonts) == 1 {
		for _, e := range c.fonts {
			return e
		}
	}
	return nil
}

// Font returns the sfnt program for the style, or nil when the family is
// unknown.
func (c *Collection) Font(st style.TextStyle) *sfnt.Font {
	if e := c.lookup(st); e != nil {
		return e.font
	}
	return nil
}

// Data returns the raw font program bytes for the style, or nil.
func (c *Collection) Data(st style.TextStyle) []byte {
	if e := c.lookup(st); e != nil {
		return e.data
	}
	return nil
}

// Face returns a rasterization face for the style at its font size. Faces
// are cached per size.
func (c *Collection) Face(st style.TextStyle) (font.Face, error) {
	e := c.lookup(st)
	if e == nil {
		return nil, fmt.Errorf("no font registered for family %q", st.Normalize().FontFamily)
	}
	size := st.Normalize().FontSize
	e.facesMu.Lock()
	defer e.facesMu.Unlock()
	if f, ok := e.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(e.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("build face: %w", err)
	}
	e.faces[size] = f
	return f, nil
}
