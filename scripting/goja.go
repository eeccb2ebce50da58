package scripting

import (
	"context"

	"github.com/dop251/goja"
)

// GojaEngine executes session scripts on a goja runtime. It is not safe for
// concurrent use; each session owns its engine.
type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	return &GojaEngine{vm: goja.New()}
}

func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.vm.RunString(script)
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return nil, cause
			}
			return nil, context.Canceled
		}
		return nil, err
	}
	return val.Export(), nil
}

// RegisterDOM installs the session globals: app.alert, getEdit and pageEdits.
func (e *GojaEngine) RegisterDOM(dom EditDOM) error {
	appObj := e.vm.NewObject()
	err := appObj.Set("alert", func(call goja.FunctionCall) goja.Value {
		msg := ""
		if len(call.Arguments) > 0 {
			msg = call.Arguments[0].String()
		}
		dom.Alert(msg)
		return goja.Undefined()
	})
	if err != nil {
		return err
	}
	e.vm.Set("app", appObj)

	e.vm.Set("getEdit", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		edit, err := dom.GetEdit(call.Arguments[0].String())
		if err != nil || edit == nil {
			return goja.Null()
		}
		return e.editObject(edit)
	})

	e.vm.Set("pageEdits", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Undefined()
		}
		edits := dom.PageEdits(int(call.Arguments[0].ToInteger()))
		out := make([]goja.Value, 0, len(edits))
		for _, edit := range edits {
			out = append(out, e.editObject(edit))
		}
		return e.vm.ToValue(out)
	})

	return nil
}

// editObject builds the script-facing view of one edit: read-only identity
// fields plus a writable text accessor.
func (e *GojaEngine) editObject(edit EditProxy) goja.Value {
	obj := e.vm.NewObject()
	obj.Set("id", edit.ID())
	obj.Set("page", edit.Page())
	obj.Set("status", edit.Status())
	obj.DefineAccessorProperty("text",
		e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return e.vm.ToValue(edit.GetText())
		}),
		e.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				edit.SetText(call.Arguments[0].String())
			}
			return goja.Undefined()
		}),
		goja.FLAG_TRUE,
		goja.FLAG_TRUE,
	)
	return obj
}
