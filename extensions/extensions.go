// Package extensions runs pluggable processing passes over a batch of edits
// before they are exported: inspection, cleanup, scripted transforms and
// validation, in that order.
package extensions

import (
	"context"
	"sort"

	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/raster"
)

type Phase int

const (
	PhaseInspect Phase = iota
	PhaseSanitize
	PhaseTransform
	PhaseValidate
)

func (p Phase) String() string { return []string{"Inspect", "Sanitize", "Transform", "Validate"}[p] }

// Batch is the unit extensions operate on: the edits of one page, plus the
// rendered surface when an extension needs pixel access.
type Batch struct {
	Page    int
	Edits   []*editor.Edit
	Surface *raster.Surface
}

type Extension interface {
	Name() string
	Phase() Phase
	Priority() int
	Execute(ctx context.Context, batch *Batch) error
}

// Inspector is an extension that examines the batch and produces a report.
type Inspector interface {
	Extension
	Inspect(ctx context.Context, batch *Batch) (*InspectionReport, error)
}

// Sanitizer is an extension that cleans up edit content in place.
type Sanitizer interface {
	Extension
	Sanitize(ctx context.Context, batch *Batch) (*SanitizationReport, error)
}

// Transformer is an extension that modifies the batch.
type Transformer interface {
	Extension
	Transform(ctx context.Context, batch *Batch) error
}

// Validator is an extension that checks the batch against export rules.
type Validator interface {
	Extension
	Validate(ctx context.Context, batch *Batch) (*ValidationReport, error)
}

type InspectionReport struct {
	EditCount    int
	AppliedCount int
	PendingCount int
	UndoneCount  int
	Metadata     map[string]interface{}
}

type SanitizationReport struct {
	ItemsFixed int
	Actions    []SanitizationAction
}

type SanitizationAction struct {
	Type        string
	Description string
	EditID      string
}

type ValidationReport struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationWarning
}

type ValidationError struct {
	Code    string
	Message string
	EditID  string
}

type ValidationWarning struct {
	Code    string
	Message string
	EditID  string
}

type Hub interface {
	Register(ext Extension) error
	Execute(ctx context.Context, batch *Batch) error
	Extensions(phase Phase) []Extension
}

type HubImpl struct {
	exts map[Phase][]Extension
}

func NewHub() *HubImpl { return &HubImpl{exts: make(map[Phase][]Extension)} }

func (h *HubImpl) Register(ext Extension) error {
	ph := ext.Phase()
	h.exts[ph] = append(h.exts[ph], ext)
	sort.Slice(h.exts[ph], func(i, j int) bool { return h.exts[ph][i].Priority() < h.exts[ph][j].Priority() })
	return nil
}

func (h *HubImpl) Execute(ctx context.Context, batch *Batch) error {
	phases := []Phase{PhaseInspect, PhaseSanitize, PhaseTransform, PhaseValidate}
	for _, ph := range phases {
		for _, e := range h.exts[ph] {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.Execute(ctx, batch); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *HubImpl) Extensions(phase Phase) []Extension {
	return append([]Extension(nil), h.exts[phase]...)
}
