// Package errors provides the exit-code taxonomy and terminal error type
// for skel. Every failure path funnels through an ExitError so the command
// layer can translate errors into process exit codes uniformly, and so the
// workspace cleanup always runs before the process leaves.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow callers to distinguish between different failure modes.
const (
	// ExitSuccess indicates the run completed successfully.
	// Help and version output also exit with this code.
	ExitSuccess = 0

	// ExitFailure indicates the main routine or a task step failed.
	ExitFailure = 1

	// ExitUsageError indicates an unrecognized flag or invalid invocation.
	ExitUsageError = 2

	// ExitConfigError indicates the config file could not be loaded or
	// failed validation (for example a min_version the build does not meet).
	ExitConfigError = 3

	// ExitInterrupted indicates the run was cut short by SIGINT or SIGTERM.
	// 128+2 follows the shell convention for signal-terminated commands.
	ExitInterrupted = 130
)

// ExitError represents a terminal failure with a specific exit code.
//
// Use this error when a run needs to exit with a non-zero status while
// providing context about what went wrong. There is no recovery or retry
// anywhere in skel; every ExitError ends the process after cleanup.
//
// Fields:
//   - Code: Exit code (use the Exit* constants)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitConfigError,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the process.
	// Standard codes: 0=success, 1=failure, 2=usage error, 3=config error,
	// 130=interrupted.
	Code int

	// Message is a human-readable description of why the run failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying
// error's message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use the Exit* constants)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
//
// Example:
//
//	err := errors.NewExitErrorf(errors.ExitUsageError, "unknown flag: %s", token)
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}
