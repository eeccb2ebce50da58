// Package editor coordinates the edit lifecycle: it owns the edits map and
// the bounded undo/redo history, and drives background detection, erasure,
// rendering and reflow for each text replacement.
package editor

import (
	"fmt"
	"time"

	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/style"
)

// Status tracks where an edit sits in its lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusApplied Status = "applied"
	StatusUndone  Status = "undone"
)

// Position is the anchor of the replacement text in surface coordinates.
type Position struct {
	X float64
	Y float64
}

// Edit is one text replacement on a page. It is created pending by
// StartEdit, mutated only by Confirm/Undo/Redo, and removed only by Cancel,
// ClearAll or ClearPage.
type Edit struct {
	ID            string
	Page          int
	BlockID       string
	Timestamp     time.Time
	OriginalText  string
	NewText       string
	Position      Position
	OriginalStyle style.TextStyle
	NewStyle      style.TextStyle
	BoundingBox   raster.Rect
	// ErasureArea is the padded region actually painted over; set once the
	// erasure runs.
	ErasureArea raster.Rect
	// BackgroundColor is the inferred erase fill, kept so redo can repaint
	// without re-running detection.
	BackgroundColor string
	Status          Status

	// seq preserves creation order for stable query results.
	seq int
}

// Operation is an immutable history snapshot appended when an edit is
// confirmed.
type Operation struct {
	ID            string
	Page          int
	OriginalText  string
	NewText       string
	OriginalStyle style.TextStyle
	NewStyle      style.TextStyle
	Timestamp     time.Time
}

// EditNotFoundError reports an operation against an edit id that does not
// exist. It indicates a caller logic error, not environmental noise.
type EditNotFoundError struct {
	ID string
}

func (e *EditNotFoundError) Error() string {
	return fmt.Sprintf("edit %q not found", e.ID)
}
