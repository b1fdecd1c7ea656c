package cli

import (
	"github.com/adytools/adyprocessor/internal/cli/shared"
)

// Exit codes for the adyprocessor CLI (re-exported from shared)
const (
	// ExitSuccess indicates the output was written (or previewed)
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates an unexpected failure
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitInputError indicates the input file is missing, unreadable or not JSON
	ExitInputError = shared.ExitInputError

	// ExitInvalidDocument indicates the input lacks detectedChannels or commandIds
	ExitInvalidDocument = shared.ExitInvalidDocument

	// ExitOutputError indicates the output file could not be written
	ExitOutputError = shared.ExitOutputError

	// ExitConfigError indicates a bad config or overrides file
	ExitConfigError = shared.ExitConfigError
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
