package extensions

import (
	"context"
	"fmt"

	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/scripting"
)

// JavaScriptRunner is a Transformer extension that executes a user script
// against the batch. The script sees the edits through getEdit/pageEdits and
// may rewrite their replacement text before export.
type JavaScriptRunner struct {
	engine scripting.Engine
	script string

	// Alerts collects messages raised by the script, newest last.
	Alerts []string
}

func NewJavaScriptRunner(engine scripting.Engine, script string) *JavaScriptRunner {
	return &JavaScriptRunner{engine: engine, script: script}
}

func (r *JavaScriptRunner) Name() string  { return "JavaScriptRunner" }
func (r *JavaScriptRunner) Phase() Phase  { return PhaseTransform }
func (r *JavaScriptRunner) Priority() int { return 100 }

func (r *JavaScriptRunner) Execute(ctx context.Context, batch *Batch) error {
	return r.Transform(ctx, batch)
}

func (r *JavaScriptRunner) Transform(ctx context.Context, batch *Batch) error {
	if r.engine == nil || r.script == "" {
		return nil
	}
	dom := &batchDOM{batch: batch, runner: r}
	if err := r.engine.RegisterDOM(dom); err != nil {
		return fmt.Errorf("register batch dom: %w", err)
	}
	if _, err := r.engine.Execute(ctx, r.script); err != nil {
		return fmt.Errorf("run batch script: %w", err)
	}
	return nil
}

// batchDOM scopes the script-facing object model to a single batch.
type batchDOM struct {
	batch  *Batch
	runner *JavaScriptRunner
}

func (d *batchDOM) GetEdit(id string) (scripting.EditProxy, error) {
	for _, e := range d.batch.Edits {
		if e.ID == id {
			return &batchEdit{edit: e}, nil
		}
	}
	return nil, &editor.EditNotFoundError{ID: id}
}

func (d *batchDOM) PageEdits(page int) []scripting.EditProxy {
	if page != d.batch.Page {
		return nil
	}
	out := make([]scripting.EditProxy, 0, len(d.batch.Edits))
	for _, e := range d.batch.Edits {
		out = append(out, &batchEdit{edit: e})
	}
	return out
}

func (d *batchDOM) Alert(message string) {
	d.runner.Alerts = append(d.runner.Alerts, message)
}

type batchEdit struct {
	edit *editor.Edit
}

func (p *batchEdit) ID() string     { return p.edit.ID }
func (p *batchEdit) Page() int      { return p.edit.Page }
func (p *batchEdit) Status() string { return string(p.edit.Status) }

func (p *batchEdit) GetText() string {
	if p.edit.NewText != "" {
		return p.edit.NewText
	}
	return p.edit.OriginalText
}

func (p *batchEdit) SetText(text string) { p.edit.NewText = text }
