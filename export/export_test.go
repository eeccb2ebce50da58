package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

func TestSnapshotAppliedOnly(t *testing.T) {
	m := editor.NewManager()
	applied := m.StartEdit(1, "b1", "old", editor.Position{X: 5, Y: 6},
		raster.Rect{X: 5, Y: 6, Width: 40, Height: 12}, style.Default())
	if _, err := m.ConfirmEdit(applied.ID, "new", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.StartEdit(1, "b2", "pending", editor.Position{}, raster.Rect{Width: 4, Height: 4}, style.Default())
	undone := m.StartEdit(2, "b3", "x", editor.Position{}, raster.Rect{Width: 4, Height: 4}, style.Default())
	if _, err := m.ConfirmEdit(undone.ID, "y", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.Undo()

	records := Snapshot(m)
	if len(records) != 1 {
		t.Fatalf("Snapshot() returned %d records, want 1", len(records))
	}
	r := records[0]
	if r.ID != applied.ID || r.PageNumber != 1 || r.NewText != "new" || r.Status != "applied" {
		t.Fatalf("unexpected record: %+v", r)
	}
	if r.BoundingBox.Width != 40 || r.Position.X != 5 {
		t.Fatalf("geometry lost: %+v", r)
	}
}

func TestWriteJSON(t *testing.T) {
	m := editor.NewManager()
	e := m.StartEdit(3, "b", "old", editor.Position{X: 1, Y: 2},
		raster.Rect{X: 1, Y: 2, Width: 10, Height: 5}, style.Default())
	over := style.TextStyle{Weight: style.WeightBold}
	if _, err := m.ConfirmEdit(e.ID, "bolded", &over); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	var back []Record
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("round trip lost records: %d", len(back))
	}
	if back[0].NewStyle.FontWeight != style.WeightBold {
		t.Fatalf("font weight did not survive JSON: %+v", back[0].NewStyle)
	}
	if back[0].PageNumber != 3 {
		t.Fatalf("page number = %d", back[0].PageNumber)
	}
}
