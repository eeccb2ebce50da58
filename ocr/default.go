package ocr

import (
	"context"
	"fmt"

	"github.com/wudi/rasteredit/raster"
)

var defaultEngine Engine = &noopEngine{}

// DefaultEngine returns the library's default OCR engine (Tesseract, when the
// tesseract subpackage is linked in).
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the library's default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

// Page pairs a page number with its rendered surface for recognition.
type Page struct {
	Number  int
	Surface *raster.Surface
}

// RecognizePages converts rendered pages to OCR inputs and invokes the
// provided engine. If the engine supports batch operation, it is used;
// otherwise calls are executed sequentially.
func RecognizePages(ctx context.Context, engine Engine, pages []Page, opts ...InputOption) ([]Result, error) {
	inputs := make([]Input, 0, len(pages))
	for _, p := range pages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		in, err := InputFromSurface(p.Number, p.Surface, opts...)
		if err != nil {
			return nil, fmt.Errorf("build input for page %d: %w", p.Number, err)
		}
		inputs = append(inputs, in)
	}
	if b, ok := engine.(BatchEngine); ok {
		return b.RecognizeBatch(ctx, inputs)
	}
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res, err := engine.Recognize(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", in.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// DefaultRecognizePages runs recognition with the default engine.
func DefaultRecognizePages(ctx context.Context, pages []Page, opts ...InputOption) ([]Result, error) {
	return RecognizePages(ctx, DefaultEngine(), pages, opts...)
}

type noopEngine struct{}

func (n noopEngine) Name() string {
	return "noop"
}

func (n noopEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	return Result{InputID: input.ID}, nil
}
