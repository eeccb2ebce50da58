// Package scripting runs user-supplied JavaScript against the edit session,
// exposing a small, controlled DOM instead of the editor internals.
package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript).
type Engine interface {
	// Execute executes a script in the context of the edit session.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterDOM registers the edit-session object model with the engine.
	RegisterDOM(dom EditDOM) error
}

// EditDOM exposes the edit session to the scripting engine. It provides a
// safe, controlled API for scripts to inspect and adjust edits.
type EditDOM interface {
	// GetEdit returns an edit by id.
	GetEdit(id string) (EditProxy, error)

	// PageEdits returns the applied edits on a page in creation order.
	PageEdits(page int) []EditProxy

	// Alert surfaces a message to the embedding application.
	Alert(message string)
}

// EditProxy represents a single edit exposed to scripts.
type EditProxy interface {
	ID() string
	Page() int
	Status() string
	GetText() string
	SetText(text string)
}
