package editor

import (
	"fmt"

	"github.com/wudi/rasteredit/background"
	"github.com/wudi/rasteredit/eraser"
	"github.com/wudi/rasteredit/metrics"
	"github.com/wudi/rasteredit/observability"
	"github.com/wudi/rasteredit/raster"
	"github.com/wudi/rasteredit/recovery"
	"github.com/wudi/rasteredit/reflow"
	"github.com/wudi/rasteredit/style"
)

// Observer receives edit lifecycle notifications. It replaces a
// process-wide event bus: the orchestrator owns the list and delivers
// synchronously in registration order.
type Observer interface {
	// EditApplied fires after a confirm or a redo.
	EditApplied(edit *Edit)
	// EditUndone fires after an undo.
	EditUndone(edit *Edit)
}

// Editor wires the detector, eraser, reflow engine and manager into the
// replacement pipeline: detect background, erase, render, reflow if needed,
// confirm into history. All instances are explicit; nothing is shared
// process-wide, so tests construct fresh editors freely.
type Editor struct {
	detector  *background.Detector
	eraser    *eraser.Eraser
	reflower  *reflow.Engine
	manager   *Manager
	strategy  recovery.Strategy
	logger    observability.Logger
	observers []Observer

	page   int
	source *raster.Surface
}

// Option configures an Editor.
type Option func(*Editor)

// WithDetector replaces the background detector.
func WithDetector(d *background.Detector) Option {
	return func(e *Editor) {
		if d != nil {
			e.detector = d
		}
	}
}

// WithManager replaces the edit manager.
func WithManager(m *Manager) Option {
	return func(e *Editor) {
		if m != nil {
			e.manager = m
		}
	}
}

// WithStrategy sets the recovery policy for degraded background detection.
func WithStrategy(s recovery.Strategy) Option {
	return func(e *Editor) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger observability.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver appends a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(e *Editor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// New constructs an Editor around an eraser and a measurer. The measurer is
// shared by the eraser-side checks and the reflow engine so both always
// agree on widths.
func New(er *eraser.Eraser, measurer metrics.Measurer, opts ...Option) *Editor {
	e := &Editor{
		detector: background.NewDetector(),
		eraser:   er,
		reflower: reflow.NewEngine(measurer),
		manager:  NewManager(),
		strategy: recovery.NewLenientStrategy(),
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Manager exposes the underlying edit manager for queries and history
// inspection.
func (e *Editor) Manager() *Manager { return e.manager }

// Reflow exposes the reflow engine for layout cascades driven by the UI.
func (e *Editor) Reflow() *reflow.Engine { return e.reflower }

// LoadPage makes the given rendered page the editing target and
// reinitializes the overlay to its dimensions.
func (e *Editor) LoadPage(page int, source *raster.Surface) error {
	if source == nil {
		return fmt.Errorf("load page %d: source surface is nil", page)
	}
	e.page = page
	e.source = source
	e.eraser.Initialize(source.Width, source.Height)
	e.logger.Info("editor: loaded page",
		observability.Int("page", page),
		observability.Int("width", source.Width),
		observability.Int("height", source.Height))
	return nil
}

// BeginEdit opens a pending edit for a text region on the current page.
func (e *Editor) BeginEdit(blockID, originalText string, pos Position, bbox raster.Rect, st style.TextStyle) *Edit {
	return e.manager.StartEdit(e.page, blockID, originalText, pos, bbox, st)
}

// minimum detection confidence before the blended-color fallback kicks in.
const lowConfidence = 0.5

// ReplaceText runs the full pipeline for a pending edit: infer the
// background, erase the region, render the (possibly truncated) replacement
// and confirm the edit into history. The returned edit carries the final
// text, style, erasure area and background color.
func (e *Editor) ReplaceText(editID, newText string, newStyle *style.TextStyle) (*Edit, error) {
	if e.source == nil {
		return nil, fmt.Errorf("replace text: no page loaded")
	}
	edit, err := e.manager.Get(editID)
	if err != nil {
		return nil, err
	}

	bg := e.detector.Detect(e.source, edit.BoundingBox)
	if bg.Confidence < lowConfidence {
		degraded := fmt.Errorf("background detection confidence %.2f below %.2f", bg.Confidence, lowConfidence)
		loc := recovery.Location{Page: edit.Page, EditID: editID, Component: "background"}
		switch e.strategy.OnError(degraded, loc) {
		case recovery.ActionFail:
			return nil, degraded
		default:
			e.logger.Warn("editor: degraded background, using blended fallback",
				observability.String("edit", editID),
				observability.Float64("confidence", bg.Confidence))
			bg.Color = e.detector.BlendedColor(e.source, edit.BoundingBox)
		}
	}

	if err := e.eraser.Erase(editID, edit.BoundingBox, bg.Color); err != nil {
		return nil, fmt.Errorf("erase for %s: %w", editID, err)
	}

	st := edit.OriginalStyle
	if newStyle != nil {
		st = st.Merge(*newStyle)
	}
	text := newText
	if res := e.reflower.CalculateReflow(edit.OriginalText, newText, edit.BoundingBox, st); !res.Fits {
		e.logger.Debug("editor: replacement overflows, truncating",
			observability.String("edit", editID),
			observability.Float64("overflow", res.Overflow))
		text = res.TruncatedText
	}
	if err := e.eraser.RenderText(text, int(edit.Position.X), int(edit.Position.Y), st); err != nil {
		return nil, fmt.Errorf("render for %s: %w", editID, err)
	}

	confirmed, err := e.manager.ConfirmEdit(editID, text, newStyle)
	if err != nil {
		return nil, err
	}
	if region, ok := e.eraser.Region(editID); ok {
		confirmed.ErasureArea = region
	}
	confirmed.BackgroundColor = bg.Color
	for _, o := range e.observers {
		o.EditApplied(confirmed)
	}
	return confirmed, nil
}

// CancelEdit drops a pending edit without touching history.
func (e *Editor) CancelEdit(editID string) { e.manager.CancelEdit(editID) }

// Undo reverts the most recent applied operation: the edit flips to undone
// and the erased pixels are restored from the original page so the next
// composite shows untouched content there.
func (e *Editor) Undo() (*Edit, error) {
	edit := e.manager.Undo()
	if edit == nil {
		return nil, nil
	}
	if _, ok := e.eraser.Region(edit.ID); ok && e.source != nil {
		if err := e.eraser.UndoErasure(edit.ID, e.source); err != nil {
			return nil, fmt.Errorf("undo erasure: %w", err)
		}
	}
	for _, o := range e.observers {
		o.EditUndone(edit)
	}
	return edit, nil
}

// Redo re-applies the most recently undone operation, repainting its
// erasure and replacement text from the state stored on the edit.
func (e *Editor) Redo() (*Edit, error) {
	edit := e.manager.Redo()
	if edit == nil {
		return nil, nil
	}
	if e.source != nil && edit.BackgroundColor != "" {
		if err := e.eraser.Erase(edit.ID, edit.BoundingBox, edit.BackgroundColor); err != nil {
			return nil, fmt.Errorf("redo erase: %w", err)
		}
		if err := e.eraser.RenderText(edit.NewText, int(edit.Position.X), int(edit.Position.Y), edit.NewStyle); err != nil {
			return nil, fmt.Errorf("redo render: %w", err)
		}
	}
	for _, o := range e.observers {
		o.EditApplied(edit)
	}
	return edit, nil
}

// CanUndo reports whether an undo is available.
func (e *Editor) CanUndo() bool { return e.manager.CanUndo() }

// CanRedo reports whether a redo is available.
func (e *Editor) CanRedo() bool { return e.manager.CanRedo() }

// Composite renders the current page with every overlay pixel applied. The
// source surface is never mutated.
func (e *Editor) Composite() (*raster.Surface, error) {
	if e.source == nil {
		return nil, fmt.Errorf("composite: no page loaded")
	}
	return e.eraser.Composite(e.source)
}
