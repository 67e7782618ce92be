package cli

import (
	"errors"

	"github.com/yaklabco/grim/pkg/runner"
)

// Exit codes for grim.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFileErrors indicates some files could not be read or decorated.
	ExitFileErrors = 1

	// ExitMathFallbacks indicates math fell back to literal source (with --strict).
	ExitMathFallbacks = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrFilesFailed is returned when some files could not be decorated.
	ErrFilesFailed = errors.New("some files could not be decorated")

	// ErrMathFallbacks is returned in strict mode when math failed to typeset.
	ErrMathFallbacks = errors.New("math fell back to literal source")

	// ErrConfig wraps configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage wraps invalid flag values.
	ErrUsage = errors.New("invalid usage")

	// ErrIO wraps failures reading inputs or writing outputs.
	ErrIO = errors.New("i/o error")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitFileErrors
	}

	if strict && result.Stats.MathFallbacks > 0 {
		return ExitMathFallbacks
	}

	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFileErrors
	case errors.Is(err, ErrMathFallbacks):
		return ExitMathFallbacks
	case errors.Is(err, ErrUsage), errors.Is(err, ErrInvalidRange):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrIO):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSignal reports whether err only carries an exit status and needs no log line.
func IsSignal(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrMathFallbacks)
}
