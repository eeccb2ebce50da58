package extensions

import (
	"context"
	"fmt"
	"strings"

	"github.com/wudi/rasteredit/editor"
)

// BasicInspector tallies the batch by edit status.
type BasicInspector struct{}

func (i *BasicInspector) Name() string  { return "BasicInspector" }
func (i *BasicInspector) Phase() Phase  { return PhaseInspect }
func (i *BasicInspector) Priority() int { return 100 }
func (i *BasicInspector) Execute(ctx context.Context, batch *Batch) error {
	_, err := i.Inspect(ctx, batch)
	return err
}

func (i *BasicInspector) Inspect(ctx context.Context, batch *Batch) (*InspectionReport, error) {
	report := &InspectionReport{
		EditCount: len(batch.Edits),
		Metadata:  make(map[string]interface{}),
	}
	for _, e := range batch.Edits {
		switch e.Status {
		case editor.StatusApplied:
			report.AppliedCount++
		case editor.StatusPending:
			report.PendingCount++
		case editor.StatusUndone:
			report.UndoneCount++
		}
	}
	report.Metadata["page"] = batch.Page
	if batch.Surface != nil {
		report.Metadata["surface"] = fmt.Sprintf("%dx%d", batch.Surface.Width, batch.Surface.Height)
	}
	return report, nil
}

// WhitespaceSanitizer collapses runs of whitespace in replacement text and
// trims the ends, so exported edits never carry stray control characters.
type WhitespaceSanitizer struct{}

func (s *WhitespaceSanitizer) Name() string  { return "WhitespaceSanitizer" }
func (s *WhitespaceSanitizer) Phase() Phase  { return PhaseSanitize }
func (s *WhitespaceSanitizer) Priority() int { return 100 }
func (s *WhitespaceSanitizer) Execute(ctx context.Context, batch *Batch) error {
	_, err := s.Sanitize(ctx, batch)
	return err
}

func (s *WhitespaceSanitizer) Sanitize(ctx context.Context, batch *Batch) (*SanitizationReport, error) {
	report := &SanitizationReport{}
	for _, e := range batch.Edits {
		clean := strings.Join(strings.Fields(e.NewText), " ")
		if clean == e.NewText {
			continue
		}
		e.NewText = clean
		report.ItemsFixed++
		report.Actions = append(report.Actions, SanitizationAction{
			Type:        "NormalizeWhitespace",
			Description: fmt.Sprintf("Collapsed whitespace in edit %s", e.ID),
			EditID:      e.ID,
		})
	}
	return report, nil
}

// ExportValidator checks that every edit in the batch is exportable: a
// non-empty bounding box and, for applied edits, non-empty replacement text.
type ExportValidator struct{}

func (v *ExportValidator) Name() string  { return "ExportValidator" }
func (v *ExportValidator) Phase() Phase  { return PhaseValidate }
func (v *ExportValidator) Priority() int { return 100 }
func (v *ExportValidator) Execute(ctx context.Context, batch *Batch) error {
	report, err := v.Validate(ctx, batch)
	if err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("batch for page %d failed validation: %d error(s)", batch.Page, len(report.Errors))
	}
	return nil
}

func (v *ExportValidator) Validate(ctx context.Context, batch *Batch) (*ValidationReport, error) {
	report := &ValidationReport{Valid: true}
	for _, e := range batch.Edits {
		if e.BoundingBox.Empty() {
			report.Valid = false
			report.Errors = append(report.Errors, ValidationError{
				Code:    "EDIT_BOUNDS",
				Message: "edit has an empty bounding box",
				EditID:  e.ID,
			})
		}
		if e.Status == editor.StatusApplied && e.NewText == "" {
			report.Valid = false
			report.Errors = append(report.Errors, ValidationError{
				Code:    "EDIT_TEXT",
				Message: "applied edit has no replacement text",
				EditID:  e.ID,
			})
		}
		if e.Status == editor.StatusPending {
			report.Warnings = append(report.Warnings, ValidationWarning{
				Code:    "EDIT_PENDING",
				Message: "pending edit will not be exported",
				EditID:  e.ID,
			})
		}
	}
	return report, nil
}
