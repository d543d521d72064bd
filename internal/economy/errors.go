package economy

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is returned when a gem spend would take the
	// balance below zero. Nothing is mutated.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrProgressionGate is returned when unlocking a world whose
	// predecessor has not been completed.
	ErrProgressionGate = errors.New("previous world not completed")

	// ErrInvalidProfile is returned when a profile breaks an invariant.
	ErrInvalidProfile = errors.New("invalid profile")
)

// FundsError reports how many gems a rejected spend needed.
type FundsError struct {
	Need int
	Have int
}

func (e *FundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d gems, have %d", e.Need, e.Have)
}

func (e *FundsError) Unwrap() error { return ErrInsufficientFunds }
