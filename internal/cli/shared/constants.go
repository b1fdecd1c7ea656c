// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"
)

// Command group IDs for organizing help output
const (
	GroupProcessing    = "processing"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess          = 0
	ExitFailure          = 1
	ExitInvalidArguments = 2
	ExitInputError       = 3
	ExitInvalidDocument  = 4
	ExitOutputError      = 5
	ExitConfigError      = 6
)

// exitError is a custom error type that carries an exit code.
// The wrapped error has already been reported to the user.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WithExitCode marks err as reported and attaches the exit code to use.
func WithExitCode(err error, code int) error {
	return &exitError{code: code, err: err}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitFailure
}

// IsReported reports whether err carries an exit code, meaning it was
// already printed.
func IsReported(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}
