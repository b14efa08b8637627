package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when a caller submits a blank query.
var ErrEmptyQuery = errors.New("query is empty")

// ErrSessionNotFound is returned when a session ID cannot be found in a
// transcript store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptyCompletion is returned by the responder when the completion
// service produced an empty answer. The engine treats it like any other
// responder failure.
var ErrEmptyCompletion = errors.New("completion returned empty output")

// ResponderError wraps a failure in the retrieve/generate path so the
// engine can report which step degraded the run to escalation.
type ResponderError struct {
	Step string // "retrieve" or "generate"
	Err  error
}

func (e *ResponderError) Error() string {
	return fmt.Sprintf("responder %s failed: %v", e.Step, e.Err)
}

func (e *ResponderError) Unwrap() error { return e.Err }
