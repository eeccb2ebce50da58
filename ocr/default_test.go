package ocr

import (
	"context"
	"testing"

	"github.com/wudi/rasteredit/raster"
)

type fakeEngine struct {
	calls []string
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	f.calls = append(f.calls, in.ID)
	return Result{InputID: in.ID, PlainText: "ok"}, nil
}

type fakeBatchEngine struct {
	fakeEngine
	batched int
}

func (f *fakeBatchEngine) RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error) {
	f.batched = len(inputs)
	out := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, Result{InputID: in.ID})
	}
	return out, nil
}

func testPages(n int) []Page {
	pages := make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, Page{Number: i, Surface: raster.NewSurface(2, 2)})
	}
	return pages
}

func TestRecognizePagesSequential(t *testing.T) {
	engine := &fakeEngine{}
	results, err := RecognizePages(context.Background(), engine, testPages(3))
	if err != nil {
		t.Fatalf("RecognizePages() error = %v", err)
	}
	if len(results) != 3 || results[1].InputID != "page-2" {
		t.Fatalf("results = %+v", results)
	}
	if len(engine.calls) != 3 {
		t.Fatalf("engine called %d times", len(engine.calls))
	}
}

func TestRecognizePagesPrefersBatch(t *testing.T) {
	engine := &fakeBatchEngine{}
	results, err := RecognizePages(context.Background(), engine, testPages(2))
	if err != nil {
		t.Fatalf("RecognizePages() error = %v", err)
	}
	if engine.batched != 2 {
		t.Fatalf("batch path not taken: %d", engine.batched)
	}
	if len(engine.calls) != 0 {
		t.Fatalf("sequential path used alongside batch: %v", engine.calls)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
}

func TestRecognizePagesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RecognizePages(ctx, &fakeEngine{}, testPages(1)); err == nil {
		t.Fatalf("cancelled context should abort recognition")
	}
}

func TestDefaultEngineIsNoop(t *testing.T) {
	res, err := DefaultEngine().Recognize(context.Background(), Input{ID: "x"})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.InputID != "x" || res.PlainText != "" {
		t.Fatalf("noop result = %+v", res)
	}
}
