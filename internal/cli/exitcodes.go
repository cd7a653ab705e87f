package cli

import (
	"errors"

	"github.com/yaklabco/mdcheck/pkg/runner"
)

// Exit codes for mdcheck.
const (
	// ExitSuccess indicates successful execution with no failing issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found error-severity
	// violations, rule failures or unreadable files (or warnings in strict mode).
	ExitLintErrors = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2
)

// ErrLintIssuesFound is returned when lint issues are found.
var ErrLintIssuesFound = errors.New("lint issues found")

// UsageError marks errors caused by invalid flags, arguments or configuration.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() {
		return ExitLintErrors
	}

	if strict && result.HasIssues() {
		return ExitLintErrors
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}

	return ExitLintErrors
}
