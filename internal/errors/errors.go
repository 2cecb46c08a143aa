// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound    = errors.New("trade not found")
	ErrTradeClosed      = errors.New("trade is already closed")
	ErrTradeOpen        = errors.New("trade is already open")
	ErrGatingInProgress = errors.New("another trade is already in gating")
	ErrGatingAborted    = errors.New("trade creation aborted")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
)

// ValidationError represents a rejected field before any state mutation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PolicyError represents a risk-discipline policy violation. These are
// advisory: callers surface them with the numeric thresholds involved and
// offer an explicit proceed-or-revise choice, never a silent correction.
type PolicyError struct {
	Rule    string
	Current float64
	Limit   float64
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("policy violation [%s]: %s (current: %.2f, limit: %.2f)", e.Rule, e.Message, e.Current, e.Limit)
}

// NewPolicyError creates a new PolicyError.
func NewPolicyError(rule string, current, limit float64, message string) *PolicyError {
	return &PolicyError{
		Rule:    rule,
		Current: current,
		Limit:   limit,
		Message: message,
	}
}

// CollaboratorError represents a failure of an external collaborator
// (market data, volatility index, coaching). The journal degrades to
// treating the optional data as absent; this error is never fatal.
type CollaboratorError struct {
	Collaborator string
	Operation    string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("collaborator error [%s] %s: %v", e.Collaborator, e.Operation, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError creates a new CollaboratorError.
func NewCollaboratorError(collaborator, operation string, err error) *CollaboratorError {
	return &CollaboratorError{
		Collaborator: collaborator,
		Operation:    operation,
		Err:          err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
