// Package apperr defines the error taxonomy shared by bot flows:
// validation failures recover locally with a re-prompt, service failures
// abort the flow with an apology, store failures abort with a generic
// "try again later" reply.
package apperr

import "fmt"

// ValidationError reports malformed user input. The conversation stays
// on the same step and re-prompts.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Code identifies the error class in handler summary logs.
func (e *ValidationError) Code() string { return "VALIDATION" }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ServiceError reports an unreachable external API or an unexpected
// response shape. The user-facing message is safe to relay verbatim.
type ServiceError struct {
	Provider string
	Msg      string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Msg)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Code identifies the error class in handler summary logs.
func (e *ServiceError) Code() string { return "SERVICE" }

// UserMessage returns the human-readable part shown to the user.
func (e *ServiceError) UserMessage() string { return e.Msg }

// Service wraps err into a ServiceError for the given provider.
func Service(provider, msg string, err error) *ServiceError {
	return &ServiceError{Provider: provider, Msg: msg, Err: err}
}

// StoreError reports a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// Code identifies the error class in handler summary logs.
func (e *StoreError) Code() string { return "STORE" }

// Store wraps err into a StoreError for the given operation.
func Store(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
