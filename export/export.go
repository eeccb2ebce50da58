// Package export produces the persisted edit list handed to the external
// document-generation service. Only applied edits reach the output artifact;
// pending and undone edits never leave the editor.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/style"
)

// Record is the wire shape the document generator expects for one edit.
type Record struct {
	ID          string      `json:"id"`
	PageNumber  int         `json:"pageNumber"`
	NewText     string      `json:"newText"`
	NewStyle    StyleRecord `json:"newStyle"`
	Position    Point       `json:"position"`
	BoundingBox Box         `json:"boundingBox"`
	Status      string      `json:"status"`
}

// StyleRecord flattens a TextStyle for serialization.
type StyleRecord struct {
	FontFamily string           `json:"fontFamily"`
	FontSize   float64          `json:"fontSize"`
	FontWeight style.FontWeight `json:"fontWeight"`
	FontStyle  string           `json:"fontStyle"`
	Decoration string           `json:"textDecoration,omitempty"`
	Color      string           `json:"color"`
	LineHeight float64          `json:"lineHeight"`
}

// Point is a position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is a bounding rectangle in surface coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Snapshot collects every applied edit from the manager in creation order.
func Snapshot(m *editor.Manager) []Record {
	edits := m.AllApplied()
	out := make([]Record, 0, len(edits))
	for _, e := range edits {
		st := e.NewStyle.Normalize()
		out = append(out, Record{
			ID:         e.ID,
			PageNumber: e.Page,
			NewText:    e.NewText,
			NewStyle: StyleRecord{
				FontFamily: st.FontFamily,
				FontSize:   st.FontSize,
				FontWeight: st.Weight,
				FontStyle:  string(st.Style),
				Decoration: st.Decoration,
				Color:      st.Color,
				LineHeight: st.LineHeight,
			},
			Position:    Point{X: e.Position.X, Y: e.Position.Y},
			BoundingBox: Box{X: e.BoundingBox.X, Y: e.BoundingBox.Y, Width: e.BoundingBox.Width, Height: e.BoundingBox.Height},
			Status:      string(e.Status),
		})
	}
	return out
}

// Write encodes the applied-edit snapshot as JSON to w.
func Write(w io.Writer, m *editor.Manager) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(m)); err != nil {
		return fmt.Errorf("encode edit snapshot: %w", err)
	}
	return nil
}
