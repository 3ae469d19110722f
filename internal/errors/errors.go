// Package errors provides the error taxonomy for git operations: sentinel
// errors, the raw command failure type, and the classified error produced by
// Classify. Use errors.Is() and errors.As() to check for specific conditions.
package errors

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Sentinel errors for common conditions
var (
	// ErrGitNotFound indicates that the git executable could not be located
	ErrGitNotFound = errors.New("git executable not found")

	// ErrNotARepository indicates that the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrOutputLimitExceeded indicates that a command produced more output than the configured cap
	ErrOutputLimitExceeded = errors.New("command output exceeded limit")

	// ErrCommandTimeout indicates that a command exceeded its execution time limit
	ErrCommandTimeout = errors.New("command timed out")

	// ErrMergeConflict indicates that a merge-family operation stopped on conflicts
	ErrMergeConflict = errors.New("merge conflict")

	// ErrNothingToCommit indicates that a commit was requested with no staged changes
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrRefLocked indicates that git could not take a ref or index lock
	ErrRefLocked = errors.New("ref locked")

	// ErrInvalidArgument indicates that an option record failed validation before execution
	ErrInvalidArgument = errors.New("invalid argument")
)

// CommandError represents a failed git subprocess invocation. It carries the
// exact command line and captured output so callers can diagnose or log the
// failure without re-running it.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.CommandLine())
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandLine returns the invocation as a single shell-quoted string for
// display. The quoted form is never executed.
func (e *CommandError) CommandLine() string {
	return shellquote.Join(append([]string{e.Command}, e.Args...)...)
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, exitCode int, stdout, stderr string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
}

// ValidationError represents an option record that failed validation before
// any subprocess was spawned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is returns true if the target error is ErrInvalidArgument
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
