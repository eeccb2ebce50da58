package scripting

import (
	"github.com/wudi/rasteredit/editor"
	"github.com/wudi/rasteredit/observability"
)

// ManagerDOM adapts an edit manager into the script-facing object model.
// Alerts go to the structured log.
type ManagerDOM struct {
	manager *editor.Manager
	logger  observability.Logger

	// Alerts collects messages raised by scripts, newest last.
	Alerts []string
}

func NewManagerDOM(m *editor.Manager, logger observability.Logger) *ManagerDOM {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &ManagerDOM{manager: m, logger: logger}
}

func (d *ManagerDOM) GetEdit(id string) (EditProxy, error) {
	edit, err := d.manager.Get(id)
	if err != nil {
		return nil, err
	}
	return &editProxy{edit: edit}, nil
}

func (d *ManagerDOM) PageEdits(page int) []EditProxy {
	edits := d.manager.PageEdits(page)
	out := make([]EditProxy, 0, len(edits))
	for _, e := range edits {
		out = append(out, &editProxy{edit: e})
	}
	return out
}

func (d *ManagerDOM) Alert(message string) {
	d.Alerts = append(d.Alerts, message)
	d.logger.Info("script alert", observability.String("message", message))
}

type editProxy struct {
	edit *editor.Edit
}

func (p *editProxy) ID() string     { return p.edit.ID }
func (p *editProxy) Page() int      { return p.edit.Page }
func (p *editProxy) Status() string { return string(p.edit.Status) }

// GetText returns the replacement text once one is set, the original
// otherwise.
func (p *editProxy) GetText() string {
	if p.edit.NewText != "" {
		return p.edit.NewText
	}
	return p.edit.OriginalText
}

func (p *editProxy) SetText(text string) { p.edit.NewText = text }
