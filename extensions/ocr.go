package extensions

import (
	"context"
	"fmt"

	"github.com/wudi/rasteredit/ocr"
)

// OCRExtension recognizes text on the batch surface using the default
// (Tesseract) engine unless another engine is supplied. The recognized lines
// become edit candidates retrievable via Candidates().
type OCRExtension struct {
	engine        ocr.Engine
	inputOptions  []ocr.InputOption
	minConfidence float64
	candidates    []ocr.Candidate
}

// NewOCRExtension constructs an OCR extension. If engine is nil, the default
// engine is used. Lines below minConfidence are dropped.
func NewOCRExtension(engine ocr.Engine, minConfidence float64, opts ...ocr.InputOption) *OCRExtension {
	if engine == nil {
		engine = ocr.DefaultEngine()
	}
	return &OCRExtension{engine: engine, minConfidence: minConfidence, inputOptions: opts}
}

func (o *OCRExtension) Name() string  { return "ocr" }
func (o *OCRExtension) Phase() Phase  { return PhaseInspect }
func (o *OCRExtension) Priority() int { return 50 }

// Candidates returns the recognized edit candidates from the last run.
func (o *OCRExtension) Candidates() []ocr.Candidate {
	return append([]ocr.Candidate(nil), o.candidates...)
}

// Execute performs OCR on the batch surface and stores the results on the
// extension instance.
func (o *OCRExtension) Execute(ctx context.Context, batch *Batch) error {
	if batch.Surface == nil {
		return fmt.Errorf("ocr: batch for page %d has no surface", batch.Page)
	}
	in, err := ocr.InputFromSurface(batch.Page, batch.Surface, o.inputOptions...)
	if err != nil {
		return err
	}
	res, err := o.engine.Recognize(ctx, in)
	if err != nil {
		return fmt.Errorf("recognize page %d: %w", batch.Page, err)
	}
	o.candidates = ocr.Candidates(res, o.minConfidence)
	return nil
}
