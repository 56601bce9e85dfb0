package output

import (
	"context"
	"errors"
)

// Exit codes returned by the doxy2json binary.
const (
	ExitSuccess     = 0
	ExitUserError   = 1 // bad flags, missing Doxyfile, invalid tag
	ExitSystemError = 2 // doxygen or git failed, I/O, malformed XML or schema
)

// ExitError is an error that carries the exit code it maps to.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem the user can fix (exit code 1).
func NewUserError(message string) *ExitError {
	return newExitError(ExitUserError, message, nil)
}

// NewUserErrorWithCause is NewUserError keeping cause for errors.Is.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return newExitError(ExitUserError, message, cause)
}

// NewSystemError reports a failure of the environment (exit code 2).
func NewSystemError(message string) *ExitError {
	return newExitError(ExitSystemError, message, nil)
}

// NewSystemErrorWithCause is NewSystemError keeping cause for errors.Is.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return newExitError(ExitSystemError, message, cause)
}

func newExitError(code int, message string, cause error) *ExitError {
	return &ExitError{Code: code, Message: message, Cause: cause}
}

// Classify returns err as an *ExitError. Untyped errors are user errors,
// except cancellation, which interrupts a build and counts as a system error.
func Classify(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newExitError(ExitSystemError, err.Error(), err)
	}
	return newExitError(ExitUserError, err.Error(), err)
}

// GetExitCode returns the process exit code for err.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return Classify(err).Code
}
