package recovery

import (
	"errors"
	"testing"
)

func TestStrictStrategy(t *testing.T) {
	s := NewStrictStrategy()
	if got := s.OnError(errors.New("boom"), Location{Component: "background"}); got != ActionFail {
		t.Fatalf("strict OnError = %v, want ActionFail", got)
	}
}

func TestLenientStrategyAccumulates(t *testing.T) {
	s := NewLenientStrategy()
	loc := Location{Page: 3, EditID: "edit-1", Component: "background"}
	if got := s.OnError(errors.New("low confidence"), loc); got != ActionWarn {
		t.Fatalf("lenient OnError = %v, want ActionWarn", got)
	}
	if got := s.OnError(errors.New("no samples"), loc); got != ActionWarn {
		t.Fatalf("lenient OnError = %v, want ActionWarn", got)
	}
	if len(s.Errors) != 2 {
		t.Fatalf("accumulated %d errors, want 2", len(s.Errors))
	}
}
