package git

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// CommandError describes a git (or pipe consumer) invocation that failed.
//
// Launch is set when the process could not be started at all, for example when
// the binary is missing. Otherwise the process ran and ExitCode and Output carry
// its exit status and captured stdout+stderr.
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
	Launch   bool
	Cause    error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	cmdline := strings.Join(e.Args, " ")
	if e.Launch {
		return fmt.Sprintf("failed to launch %s: %v", cmdline, e.Cause)
	}
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("%s exited with code %d", cmdline, e.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", cmdline, e.ExitCode, out)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// IsLaunchFailure reports whether err (or anything it wraps) is a CommandError
// for a process that never started.
func IsLaunchFailure(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Launch
}

// ExitCode returns the exit code carried by a wrapped CommandError, or -1.
func ExitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && !cmdErr.Launch {
		return cmdErr.ExitCode
	}
	return -1
}
