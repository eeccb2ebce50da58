// Package recovery lets callers choose how the editor reacts when a
// best-effort stage degrades, most notably when background detection cannot
// produce a confident result. Strict policies surface the problem, lenient
// ones record it and continue with the documented fallback.
package recovery

// Strategy decides what happens after a recoverable error.
type Strategy interface {
	OnError(err error, location Location) Action
}

// Location identifies where in the edit pipeline the error occurred.
type Location struct {
	Page      int
	EditID    string
	Component string
}

// Action is the strategy's verdict.
type Action int

const (
	// ActionFail aborts the operation with the error.
	ActionFail Action = iota
	// ActionSkip drops the stage's result entirely.
	ActionSkip
	// ActionWarn records the error and continues with the fallback.
	ActionWarn
)
