package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount rejects balance operations with a non-finite,
	// negative, or (for decrease) zero amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance rejects a decrease that would drive the
	// monthly balance below zero.
	ErrInsufficientBalance = errors.New("decrease amount exceeds current balance")
)

// InvalidTransactionError reports which transaction field failed validation.
type InvalidTransactionError struct {
	Field  string
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// CorruptStateError means the persisted snapshot could not be parsed as the
// expected shape. There is no automatic recovery: callers decide whether to
// halt, and the stored value is left untouched.
type CorruptStateError struct {
	Reason string
	Err    error
}

func (e *CorruptStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt ledger state: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt ledger state: %s", e.Reason)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}
