package recovery

import "fmt"

// StrictStrategy fails fast on every recoverable error.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy { return &StrictStrategy{} }

func (s *StrictStrategy) OnError(err error, location Location) Action {
	return ActionFail
}

// LenientStrategy accumulates errors and lets the pipeline continue with its
// fallback. This matches the fail-soft policy of background detection.
type LenientStrategy struct {
	Errors []error
}

func NewLenientStrategy() *LenientStrategy { return &LenientStrategy{} }

func (s *LenientStrategy) OnError(err error, location Location) Action {
	s.Errors = append(s.Errors, fmt.Errorf("[%s] page %d edit %s: %w",
		location.Component, location.Page, location.EditID, err))
	return ActionWarn
}
