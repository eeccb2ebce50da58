package editor

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

func startTestEdit(m *Manager, page int) *Edit {
	return m.StartEdit(page, "block-1", "original",
		Position{X: 10, Y: 20},
		raster.Rect{X: 10, Y: 20, Width: 80, Height: 14},
		style.Default())
}

func TestStartConfirmLifecycle(t *testing.T) {
	m := NewManager()
	edit := startTestEdit(m, 1)
	if edit.Status != StatusPending {
		t.Fatalf("new edit status = %s, want pending", edit.Status)
	}
	if m.ActiveEdit() == nil || m.ActiveEdit().ID != edit.ID {
		t.Fatalf("active edit pointer not set")
	}

	confirmed, err := m.ConfirmEdit(edit.ID, "New text", nil)
	if err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	if confirmed.Status != StatusApplied {
		t.Fatalf("confirmed status = %s, want applied", confirmed.Status)
	}
	if confirmed.NewText != "New text" {
		t.Fatalf("newText = %q", confirmed.NewText)
	}
	if m.ActiveEdit() != nil {
		t.Fatalf("active pointer should clear on confirm")
	}

	undone := m.Undo()
	if undone == nil || undone.Status != StatusUndone {
		t.Fatalf("Undo() = %+v, want undone edit", undone)
	}
	if !m.CanRedo() {
		t.Fatalf("CanRedo should be true after undo")
	}
	redone := m.Redo()
	if redone == nil || redone.Status != StatusApplied {
		t.Fatalf("Redo() = %+v, want applied edit", redone)
	}
}

func TestConfirmUnknownEdit(t *testing.T) {
	m := NewManager()
	_, err := m.ConfirmEdit("missing", "text", nil)
	var notFound *EditNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ConfirmEdit error = %v, want EditNotFoundError", err)
	}
	if notFound.ID != "missing" {
		t.Fatalf("error carries id %q", notFound.ID)
	}
}

func TestConfirmMergesStyle(t *testing.T) {
	m := NewManager()
	edit := startTestEdit(m, 1)
	over := style.TextStyle{FontSize: 18, Weight: style.WeightBold}
	confirmed, err := m.ConfirmEdit(edit.ID, "x", &over)
	if err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	if confirmed.NewStyle.FontSize != 18 || !confirmed.NewStyle.Weight.Bold() {
		t.Fatalf("style not merged: %+v", confirmed.NewStyle)
	}
	if confirmed.NewStyle.FontFamily != edit.OriginalStyle.FontFamily {
		t.Fatalf("base style lost in merge: %+v", confirmed.NewStyle)
	}
}

func TestConfirmDiscardsRedoSuffix(t *testing.T) {
	m := NewManager()
	a := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(a.ID, "a", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	b := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(b.ID, "b", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.Undo()
	if !m.CanRedo() {
		t.Fatalf("CanRedo should be true after undo")
	}

	c := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(c.ID, "c", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	// A confirm right after an undo must clear the redo suffix.
	if m.CanRedo() {
		t.Fatalf("CanRedo should be false immediately after a confirm")
	}
	ops := m.History()
	if len(ops) != 2 || ops[0].NewText != "a" || ops[1].NewText != "c" {
		t.Fatalf("history after truncation = %+v", ops)
	}
}

func TestHistoryRingEviction(t *testing.T) {
	m := NewManager()
	for i := 0; i < MaxHistorySize+10; i++ {
		e := startTestEdit(m, 1)
		if _, err := m.ConfirmEdit(e.ID, fmt.Sprintf("text-%d", i), nil); err != nil {
			t.Fatalf("ConfirmEdit() error = %v", err)
		}
	}
	ops := m.History()
	if len(ops) != MaxHistorySize {
		t.Fatalf("history length = %d, want %d", len(ops), MaxHistorySize)
	}
	if ops[0].NewText != "text-10" {
		t.Fatalf("oldest retained operation = %q, want text-10", ops[0].NewText)
	}
	if ops[len(ops)-1].NewText != fmt.Sprintf("text-%d", MaxHistorySize+9) {
		t.Fatalf("newest operation = %q", ops[len(ops)-1].NewText)
	}
	// Cursor still points at the newest entry.
	if !m.CanUndo() || m.CanRedo() {
		t.Fatalf("cursor drifted after eviction: undo=%v redo=%v", m.CanUndo(), m.CanRedo())
	}
}

func TestUndoRedoBounds(t *testing.T) {
	m := NewManager()
	if m.Undo() != nil {
		t.Fatalf("Undo on empty history should return nil")
	}
	if m.Redo() != nil {
		t.Fatalf("Redo at end of history should return nil")
	}
	e := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(e.ID, "x", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.Undo()
	if m.Undo() != nil {
		t.Fatalf("second Undo should return nil")
	}
	m.Redo()
	if m.Redo() != nil {
		t.Fatalf("second Redo should return nil")
	}
}

func TestCancelEdit(t *testing.T) {
	m := NewManager()
	e := startTestEdit(m, 1)
	m.CancelEdit(e.ID)
	if _, err := m.Get(e.ID); err == nil {
		t.Fatalf("cancelled edit still present")
	}
	if m.ActiveEdit() != nil {
		t.Fatalf("active pointer survived cancel")
	}
	// Missing id is a no-op.
	m.CancelEdit("missing")
}

func TestOrphanedPendingEditPreserved(t *testing.T) {
	m := NewManager()
	first := startTestEdit(m, 1)
	second := startTestEdit(m, 1)
	if m.ActiveEdit().ID != second.ID {
		t.Fatalf("active pointer should follow the newest edit")
	}
	// The first pending edit stays in the map without being committed.
	got, err := m.Get(first.ID)
	if err != nil {
		t.Fatalf("first pending edit was deleted: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("first edit status = %s, want pending", got.Status)
	}
	// Cancelling the non-active pending edit is a no-op removal-wise.
	m.CancelEdit(first.ID)
	if _, err := m.Get(first.ID); err != nil {
		t.Fatalf("cancel removed a non-active edit")
	}
}

func TestQueriesFilterApplied(t *testing.T) {
	m := NewManager()
	applied := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(applied.ID, "a", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	pending := startTestEdit(m, 1)
	otherPage := m.StartEdit(2, "b", "orig", Position{}, raster.Rect{Width: 10, Height: 10}, style.Default())
	if _, err := m.ConfirmEdit(otherPage.ID, "b", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.Undo() // undoes otherPage

	page1 := m.PageEdits(1)
	if len(page1) != 1 || page1[0].ID != applied.ID {
		t.Fatalf("PageEdits(1) = %+v", page1)
	}
	if m.EditCount(1) != 1 || m.TotalEditCount() != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", m.EditCount(1), m.TotalEditCount())
	}
	if len(m.PageEdits(2)) != 0 {
		t.Fatalf("undone edit leaked into PageEdits(2)")
	}
	_ = pending
}

func TestClearAllAndClearPage(t *testing.T) {
	m := NewManager()
	p1 := startTestEdit(m, 1)
	p2 := m.StartEdit(2, "b", "orig", Position{}, raster.Rect{Width: 5, Height: 5}, style.Default())
	if _, err := m.ConfirmEdit(p1.ID, "a", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	if _, err := m.ConfirmEdit(p2.ID, "b", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}

	m.ClearPage(1)
	if _, err := m.Get(p1.ID); err == nil {
		t.Fatalf("ClearPage left page-1 edit behind")
	}
	if _, err := m.Get(p2.ID); err != nil {
		t.Fatalf("ClearPage removed page-2 edit: %v", err)
	}

	m.ClearAll()
	if m.TotalEditCount() != 0 || m.CanUndo() || m.ActiveEdit() != nil {
		t.Fatalf("ClearAll left state behind")
	}
}

func TestUndoAfterClearPageIsNoop(t *testing.T) {
	m := NewManager()
	e := startTestEdit(m, 1)
	if _, err := m.ConfirmEdit(e.ID, "x", nil); err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	m.ClearPage(1)
	if got := m.Undo(); got != nil {
		t.Fatalf("Undo over a cleared edit = %+v, want nil", got)
	}
}

func TestTimestampsAdvanceOnConfirm(t *testing.T) {
	base := time.Unix(1000, 0)
	current := base
	m := NewManager(withClock(func() time.Time { return current }))
	e := startTestEdit(m, 1)
	if !e.Timestamp.Equal(base) {
		t.Fatalf("start timestamp = %v", e.Timestamp)
	}
	current = base.Add(5 * time.Second)
	confirmed, err := m.ConfirmEdit(e.ID, "x", nil)
	if err != nil {
		t.Fatalf("ConfirmEdit() error = %v", err)
	}
	if !confirmed.Timestamp.Equal(current) {
		t.Fatalf("confirm did not refresh timestamp: %v", confirmed.Timestamp)
	}
}
