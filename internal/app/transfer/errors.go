package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid transfer request")
	ErrSameChain      = errors.New("source and target chain must differ")
)

// Saga steps in execution order. StepError names the step a failed transfer
// reached so operators can reconcile the chains by hand.
const (
	StepLock       = "lock"
	StepCoordinate = "coordinate"
	StepIssue      = "issue"
	StepComplete   = "complete"
)

type StepError struct {
	TransferID string
	Step       string
	Err        error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("transfer %s failed at %s step: %v", e.TransferID, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
