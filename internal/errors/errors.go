// Package errors provides the typed error hierarchy for debuggee.
// Every failure the fixture can hit is fatal, so the categories exist to pick
// an exit status and to give the harness a recognizable message.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error for classification and exit-code mapping.
type ErrorType string

// Error categories. Usage is the only one with a dedicated exit status.
const (
	ErrTypeUsage      ErrorType = "usage"
	ErrTypeConfig     ErrorType = "config"
	ErrTypeExecutable ErrorType = "executable"
	ErrTypeSpawn      ErrorType = "spawn"
	ErrTypeWait       ErrorType = "wait"
	ErrTypeOutput     ErrorType = "output"
)

// Exit statuses reported by the binary.
const (
	ExitUsage   = -1
	ExitFailure = 1
)

// DebuggeeError is the base error type carrying a category, an optional
// path (executable or log file) and the underlying cause.
type DebuggeeError struct {
	Type    ErrorType
	Path    string
	Message string
	Cause   error
}

func (e *DebuggeeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Path, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *DebuggeeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DebuggeeError of the same category,
// so errors.Is works across the wrapper types below.
func (e *DebuggeeError) Is(target error) bool {
	t, ok := target.(*DebuggeeError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// UsageError reports a command line that selects no testcase.
// Its message is printed verbatim, without the category prefix.
type UsageError struct {
	*DebuggeeError
}

// NewUsageError creates a usage error.
func NewUsageError(message string) *UsageError {
	return &UsageError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeUsage,
			Message: message,
		},
	}
}

// ConfigError represents invalid flag values.
type ConfigError struct {
	*DebuggeeError
}

// NewConfigError creates a configuration error without path context.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeConfig,
			Message: message,
			Cause:   cause,
		},
	}
}

// NewConfigErrorWithPath creates a configuration error tied to a file,
// such as an unwritable log destination.
func NewConfigErrorWithPath(path, message string, cause error) *ConfigError {
	return &ConfigError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeConfig,
			Path:    path,
			Message: message,
			Cause:   cause,
		},
	}
}

// ExecutableError is returned when the running binary cannot locate itself.
type ExecutableError struct {
	*DebuggeeError
}

// NewExecutableError creates an executable lookup error.
func NewExecutableError(cause error) *ExecutableError {
	return &ExecutableError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeExecutable,
			Message: "cannot resolve current executable",
			Cause:   cause,
		},
	}
}

// SpawnError is returned when a child process fails to start.
type SpawnError struct {
	*DebuggeeError
}

// NewSpawnError creates a spawn error for the given executable.
func NewSpawnError(path string, cause error) *SpawnError {
	return &SpawnError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeSpawn,
			Path:    path,
			Message: "failed to start child process",
			Cause:   cause,
		},
	}
}

// WaitError is returned when waiting on a started child fails, including
// a child that exits with a non-zero status.
type WaitError struct {
	*DebuggeeError
	Pid int
}

// NewWaitError creates a wait error for the child with the given pid.
func NewWaitError(path string, pid int, cause error) *WaitError {
	return &WaitError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeWait,
			Path:    path,
			Message: fmt.Sprintf("failed to wait for child %d", pid),
			Cause:   cause,
		},
		Pid: pid,
	}
}

// OutputError is returned when writing to an observation channel fails.
type OutputError struct {
	*DebuggeeError
}

// NewOutputError creates an output error naming the stream.
func NewOutputError(stream string, cause error) *OutputError {
	return &OutputError{
		DebuggeeError: &DebuggeeError{
			Type:    ErrTypeOutput,
			Path:    stream,
			Message: "write failed",
			Cause:   cause,
		},
	}
}

// IsUsage reports whether err is, or wraps, a usage error.
func IsUsage(err error) bool {
	return errors.Is(err, &DebuggeeError{Type: ErrTypeUsage})
}

// ExitCode maps an error returned by the command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsUsage(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Message returns the text printed for err. Usage errors print their bare
// message; everything else prints the full categorized error.
func Message(err error) string {
	var ue *UsageError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return err.Error()
}
