package editor

import (
	"fmt"
	"sort"
	"time"

	"github.com/wudi/rasteredit/observability"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// MaxHistorySize bounds the undo/redo log. Confirming past the bound evicts
// the oldest operation, so the log behaves as a fixed-capacity ring.
const MaxHistorySize = 50

// Manager owns the edits map and the linear history log. It assumes the
// single-writer call ordering of a UI event loop and performs no internal
// locking; the Editor serializes access when used concurrently.
type Manager struct {
	edits      map[string]*Edit
	history    []Operation
	cursor     int // index of the most recently applied operation, -1 when none
	activeID   string
	maxHistory int
	nextSeq    int
	logger     observability.Logger
	now        func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger attaches a structured logger.
func WithManagerLogger(logger observability.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHistorySize overrides the history bound, mainly for tests.
func WithHistorySize(n int) ManagerOption {
	return func(m *Manager) {
		if n > 0 {
			m.maxHistory = n
		}
	}
}

// withClock fixes the timestamp source in tests.
func withClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// NewManager constructs an empty edit manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		edits:      make(map[string]*Edit),
		cursor:     -1,
		maxHistory: MaxHistorySize,
		logger:     observability.NopLogger{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartEdit opens a new pending edit and makes it the active one. An
// already pending edit stays in the map untouched; only the active pointer
// moves. That preserves the possibility of several unconfirmed edits with
// one in focus.
func (m *Manager) StartEdit(page int, blockID, originalText string, pos Position, bbox raster.Rect, originalStyle style.TextStyle) *Edit {
	m.nextSeq++
	edit := &Edit{
		ID:            fmt.Sprintf("edit-%d", m.nextSeq),
		Page:          page,
		BlockID:       blockID,
		Timestamp:     m.now(),
		OriginalText:  originalText,
		Position:      pos,
		OriginalStyle: originalStyle.Normalize(),
		BoundingBox:   bbox,
		Status:        StatusPending,
		seq:           m.nextSeq,
	}
	m.edits[edit.ID] = edit
	m.activeID = edit.ID
	m.logger.Debug("manager: started edit",
		observability.String("edit", edit.ID),
		observability.Int("page", page))
	return edit
}

// Get returns the edit for id or an EditNotFoundError.
func (m *Manager) Get(id string) (*Edit, error) {
	edit, ok := m.edits[id]
	if !ok {
		return nil, &EditNotFoundError{ID: id}
	}
	return edit, nil
}

// ConfirmEdit applies the replacement text to a known edit. It discards any
// redo-able suffix of the history, appends a new operation, and advances the
// cursor; when the log exceeds its bound the oldest operation is evicted and
// the cursor pulled back. The active pointer is cleared.
func (m *Manager) ConfirmEdit(id, newText string, newStyle *style.TextStyle) (*Edit, error) {
	edit, ok := m.edits[id]
	if !ok {
		return nil, &EditNotFoundError{ID: id}
	}
	edit.NewText = newText
	merged := edit.OriginalStyle
	if newStyle != nil {
		merged = merged.Merge(*newStyle)
	}
	edit.NewStyle = merged
	edit.Status = StatusApplied
	edit.Timestamp = m.now()

	m.history = append(m.history[:m.cursor+1], Operation{
		ID:            edit.ID,
		Page:          edit.Page,
		OriginalText:  edit.OriginalText,
		NewText:       edit.NewText,
		OriginalStyle: edit.OriginalStyle,
		NewStyle:      edit.NewStyle,
		Timestamp:     edit.Timestamp,
	})
	m.cursor = len(m.history) - 1
	if len(m.history) > m.maxHistory {
		m.history = m.history[1:]
		m.cursor--
	}
	if m.activeID == id {
		m.activeID = ""
	}
	m.logger.Info("manager: confirmed edit",
		observability.String("edit", id),
		observability.Int("history", len(m.history)))
	return edit, nil
}

// CancelEdit removes the edit if it is the active pending one. A missing id
// is a warned no-op: cancel races against confirm in UI flows and must not
// fail.
func (m *Manager) CancelEdit(id string) {
	edit, ok := m.edits[id]
	if !ok {
		m.logger.Warn("manager: cancel for unknown edit", observability.String("edit", id))
		return
	}
	if m.activeID == id && edit.Status == StatusPending {
		delete(m.edits, id)
		m.activeID = ""
	}
}

// CanUndo reports whether an operation is available behind the cursor.
func (m *Manager) CanUndo() bool { return m.cursor >= 0 }

// CanRedo reports whether an undone operation is available ahead of the
// cursor.
func (m *Manager) CanRedo() bool { return m.cursor < len(m.history)-1 }

// Undo marks the edit at the cursor undone and steps the cursor back.
// Returns nil when there is nothing to undo.
func (m *Manager) Undo() *Edit {
	if m.cursor < 0 {
		return nil
	}
	op := m.history[m.cursor]
	m.cursor--
	edit, ok := m.edits[op.ID]
	if !ok {
		// The edit was bulk-removed after being confirmed; the operation
		// stays in the log but there is nothing left to flip.
		return nil
	}
	edit.Status = StatusUndone
	return edit
}

// Redo advances the cursor and marks that operation's edit applied again.
// Returns nil when the cursor is already at the end of history.
func (m *Manager) Redo() *Edit {
	if !m.CanRedo() {
		return nil
	}
	m.cursor++
	op := m.history[m.cursor]
	edit, ok := m.edits[op.ID]
	if !ok {
		return nil
	}
	edit.Status = StatusApplied
	return edit
}

// ActiveEdit returns the pending edit under the active pointer, or nil.
func (m *Manager) ActiveEdit() *Edit {
	if m.activeID == "" {
		return nil
	}
	return m.edits[m.activeID]
}

// PageEdits returns the applied edits on a page, ordered by id sequence.
// Undone and pending edits are excluded from every render and export path.
func (m *Manager) PageEdits(page int) []*Edit {
	var out []*Edit
	for _, e := range m.edits {
		if e.Page == page && e.Status == StatusApplied {
			out = append(out, e)
		}
	}
	sortEdits(out)
	return out
}

// AllApplied returns every applied edit across pages.
func (m *Manager) AllApplied() []*Edit {
	var out []*Edit
	for _, e := range m.edits {
		if e.Status == StatusApplied {
			out = append(out, e)
		}
	}
	sortEdits(out)
	return out
}

// EditCount counts applied edits on a page.
func (m *Manager) EditCount(page int) int { return len(m.PageEdits(page)) }

// TotalEditCount counts applied edits across all pages.
func (m *Manager) TotalEditCount() int { return len(m.AllApplied()) }

// History returns a copy of the operation log.
func (m *Manager) History() []Operation {
	out := make([]Operation, len(m.history))
	copy(out, m.history)
	return out
}

// ClearAll removes every edit and resets history, cursor and active
// pointer.
func (m *Manager) ClearAll() {
	m.edits = make(map[string]*Edit)
	m.history = nil
	m.cursor = -1
	m.activeID = ""
}

// ClearPage removes every edit on the given page. History entries referring
// to removed edits stay in the log and become no-ops for undo/redo.
func (m *Manager) ClearPage(page int) {
	for id, e := range m.edits {
		if e.Page == page {
			if m.activeID == id {
				m.activeID = ""
			}
			delete(m.edits, id)
		}
	}
}

func sortEdits(edits []*Edit) {
	sort.Slice(edits, func(i, j int) bool { return edits[i].seq < edits[j].seq })
}
