package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a command is not allowed in the
	// session's current phase. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidChoice is returned when a submitted option index is out of range.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrSessionClosed is returned for any command after Exit.
	ErrSessionClosed = errors.New("session closed")
)

// TransitionError describes a rejected command.
type TransitionError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s not allowed in %s: %s", e.Op, e.Phase, e.Reason)
	}
	return fmt.Sprintf("%s not allowed in %s", e.Op, e.Phase)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
