package domain

import (
	"sync"

	content "elyseeWeb/internal/modules/content/domain"
)

// Session is one open viewer over a dish. Commands are applied one at a time;
// the last applied command wins. Closing runs the close callback exactly once
// and rejects later commands.
type Session struct {
	dish    content.Dish
	onClose func()

	mu     sync.Mutex
	state  State
	closed bool
}

// NewSession opens a viewer for dish. onClose may be nil.
func NewSession(dish content.Dish, onClose func()) *Session {
	return &Session{dish: dish, onClose: onClose, state: NewState()}
}

func (s *Session) Dish() content.Dish { return s.dish }

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply evaluates cmd and returns the resulting snapshot.
func (s *Session) Apply(cmd Command) (State, error) {
	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		return st, ErrSessionClosed
	}
	next, err := Apply(s.state, cmd)
	if err != nil {
		st := s.state
		s.mu.Unlock()
		return st, err
	}
	s.state = next
	var cb func()
	if next.Closed {
		s.closed = true
		cb = s.onClose
	}
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
	return next, nil
}

// Close ends the session without a command, e.g. when the page navigates away
// or the socket drops. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = s.state.Close()
	s.closed = true
	cb := s.onClose
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
