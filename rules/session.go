package rules

import (
	"context"
	"errors"
	"sync"
)

// SessionState is the lifecycle of one edit session, from opening the update
// form to a settled submission.
type SessionState string

const (
	StateIdle       SessionState = "Idle"
	StateEditing    SessionState = "Editing"
	StateValidating SessionState = "Validating"
	StateSubmitting SessionState = "Submitting"
	StateSucceeded  SessionState = "Succeeded"
	StateFailed     SessionState = "Failed"
)

var (
	// ErrSubmitInFlight is returned when a second submission is attempted
	// while one is already running. At most one mutation may be in flight
	// per session.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrSessionClosed is returned when acting on a closed session.
	ErrSessionClosed = errors.New("edit session is closed")
)

// EditSession tracks request-scoped mutable state for a single update form:
// current state, the in-flight guard and the closed flag that discards late
// responses. It never holds a mutable reference to the project itself; the
// update replaces, it does not patch in place.
type EditSession struct {
	mu     sync.Mutex
	state  SessionState
	closed bool
}

// NewEditSession starts a session in Idle.
func NewEditSession() *EditSession {
	return &EditSession{state: StateIdle}
}

// State returns the current state.
func (s *EditSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Edit records user input. Permitted from any settled state; a session in
// Submitting keeps its state so the form stays locked.
func (s *EditSession) Edit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == StateSubmitting {
		return
	}
	s.state = StateEditing
}

// Validating marks a validation pass. Cheap arithmetic only; safe on every
// keystroke.
func (s *EditSession) Validating() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == StateSubmitting {
		return
	}
	s.state = StateValidating
}

// Submit runs fn exactly once per in-flight window. A second call while fn is
// running returns ErrSubmitInFlight without invoking fn. If the session is
// closed before fn settles, its result is discarded and the state is left
// untouched.
func (s *EditSession) Submit(ctx context.Context, fn func(context.Context) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.state = StateSubmitting
	s.mu.Unlock()

	err := fn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// late response after the form was closed: no partial state applies
		return ErrSessionClosed
	}
	if err != nil {
		s.state = StateFailed
		return err
	}
	s.state = StateSucceeded
	return nil
}

// Close abandons the session. In-flight submissions that settle afterwards
// are ignored.
func (s *EditSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the session was abandoned.
func (s *EditSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
