package cli

import "errors"

// ErrMisplacedFlag is returned when a flag follows the first username. Flags
// are only parsed before positional arguments.
var ErrMisplacedFlag = errors.New("flags must come before usernames")

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries the exit code a failure should terminate the process with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode implements the urfave/cli ExitCoder interface.
func (e *ExitError) ExitCode() int { return e.Code }

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for an
// *ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
