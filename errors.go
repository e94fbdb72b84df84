package stately

import (
	"errors"
	"fmt"
)

// ErrorKind tags the machine-generated error conditions
type ErrorKind string

const (
	// KindInvalidTransition means the transition is not defined for the current state
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	// KindInvalidState means a computed next state is not a valid state
	KindInvalidState ErrorKind = "INVALID_STATE"
	// KindMachineError means a transition procedure failed
	KindMachineError ErrorKind = "MACHINE_ERROR"
)

// Sentinels for errors.Is matching against a *StateMachineError
var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidState      = errors.New("invalid state")
	ErrMachineError      = errors.New("machine error")
)

// StateMachineError is the error record produced for every machine error kind.
// It is returned as a value inside a Result, or as the Go error of the
// operation when the machine throws.
type StateMachineError struct {
	Kind    ErrorKind `json:"error"`
	Message string    `json:"message"`

	// Transition is set for INVALID_TRANSITION and MACHINE_ERROR
	Transition string `json:"transition,omitempty"`
	// State is the rejected state of an INVALID_STATE error
	State string `json:"state,omitempty"`

	CurrentState   string   `json:"currentState"`
	LastTransition string   `json:"lastTransition,omitempty"`
	Context        *Context `json:"context"`

	// Cause is the error raised by the transition procedure
	Cause error `json:"-"`
}

func (e *StateMachineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StateMachineError) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinels
func (e *StateMachineError) Is(target error) bool {
	switch target {
	case ErrInvalidTransition:
		return e.Kind == KindInvalidTransition
	case ErrInvalidState:
		return e.Kind == KindInvalidState
	case ErrMachineError:
		return e.Kind == KindMachineError
	}
	return false
}

// NewInvalidTransitionError creates the record for an unresolved transition
func NewInvalidTransitionError(transition, currentState string) *StateMachineError {
	return &StateMachineError{
		Kind:       KindInvalidTransition,
		Message:    fmt.Sprintf("invalid transition: %s, current state: %s", transition, currentState),
		Transition: transition,
	}
}

// NewInvalidStateError creates the record for a state outside the valid set
func NewInvalidStateError(state string) *StateMachineError {
	return &StateMachineError{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("invalid new state: %s", state),
		State:   state,
	}
}

// NewMachineError creates the record for a failed transition procedure
func NewMachineError(transition string, cause error) *StateMachineError {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return &StateMachineError{
		Kind:       KindMachineError,
		Message:    message,
		Transition: transition,
		Cause:      cause,
	}
}

// ShortcutError reports a call to a shortcut that does not exist or was given
// an argument it cannot use. It is not a machine error kind.
type ShortcutError struct {
	Name   string
	Reason string
}

func (e *ShortcutError) Error() string {
	return fmt.Sprintf("shortcut %q: %s", e.Name, e.Reason)
}

// NewShortcutError creates a new shortcut error
func NewShortcutError(name, reason string) *ShortcutError {
	return &ShortcutError{Name: name, Reason: reason}
}

// AsStateMachineError extracts a *StateMachineError from err
func AsStateMachineError(err error) (*StateMachineError, bool) {
	var smErr *StateMachineError
	if errors.As(err, &smErr) {
		return smErr, true
	}
	return nil, false
}

// IsStateMachineError checks if an error is a StateMachineError
func IsStateMachineError(err error) bool {
	_, ok := AsStateMachineError(err)
	return ok
}

// IsShortcutError checks if an error is a ShortcutError
func IsShortcutError(err error) bool {
	var e *ShortcutError
	return errors.As(err, &e)
}

// GetErrorKind returns the kind of a machine error, empty for other errors
func GetErrorKind(err error) ErrorKind {
	if smErr, ok := AsStateMachineError(err); ok {
		return smErr.Kind
	}
	return ""
}
