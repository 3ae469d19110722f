package errors

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// stderrRule maps a lowercase output substring to a classification. Rules are
// checked in order and the first match wins, so more specific patterns come
// before broader ones.
type stderrRule struct {
	substr   string
	category Category
	severity Severity
	sentinel error
}

var stderrRules = []stderrRule{
	{"not a git repository", CategoryRepository, SeverityHigh, ErrNotARepository},
	{"index.lock", CategoryRepository, SeverityMedium, ErrRefLocked},
	{"cannot lock ref", CategoryRepository, SeverityMedium, ErrRefLocked},
	{"unable to lock", CategoryRepository, SeverityMedium, ErrRefLocked},
	{"you have unmerged files", CategoryRepository, SeverityMedium, nil},
	{"needs merge", CategoryRepository, SeverityMedium, nil},
	{"is already in progress", CategoryRepository, SeverityMedium, nil},

	{"conflict", CategoryOperation, SeverityMedium, ErrMergeConflict},
	{"nothing to commit", CategoryOperation, SeverityLow, ErrNothingToCommit},
	{"nothing added to commit", CategoryOperation, SeverityLow, ErrNothingToCommit},
	{"no stash entries found", CategoryOperation, SeverityLow, nil},
	{"refusing to merge unrelated histories", CategoryOperation, SeverityMedium, nil},
	{"not possible to fast-forward", CategoryOperation, SeverityMedium, nil},
	{"would be overwritten by", CategoryOperation, SeverityMedium, nil},
	{"is not fully merged", CategoryOperation, SeverityMedium, nil},

	{"already exists", CategoryValidation, SeverityMedium, nil},
	{"did not match any file", CategoryValidation, SeverityMedium, nil},
	{"unknown revision or path", CategoryValidation, SeverityMedium, nil},
	{"bad revision", CategoryValidation, SeverityMedium, nil},
	{"couldn't find remote ref", CategoryValidation, SeverityMedium, nil},
	{"is not a commit and a branch", CategoryValidation, SeverityMedium, nil},
	{"usage:", CategoryValidation, SeverityMedium, nil},

	// Credential failures often also mention the unreachable remote, so the
	// security patterns must be checked before the network ones.
	{"authentication failed", CategorySecurity, SeverityHigh, nil},
	{"invalid username or password", CategorySecurity, SeverityHigh, nil},
	{"terminal prompts disabled", CategorySecurity, SeverityHigh, nil},
	{"permission denied", CategorySecurity, SeverityHigh, nil},

	{"could not read from remote repository", CategoryNetwork, SeverityHigh, nil},
	{"unable to access", CategoryNetwork, SeverityHigh, nil},
	{"could not resolve host", CategoryNetwork, SeverityHigh, nil},
	{"connection refused", CategoryNetwork, SeverityHigh, nil},
	{"connection timed out", CategoryNetwork, SeverityHigh, nil},
	{"operation timed out", CategoryNetwork, SeverityHigh, nil},
	{"network is unreachable", CategoryNetwork, SeverityHigh, nil},
	{"early eof", CategoryNetwork, SeverityHigh, nil},
	{"rpc failed", CategoryNetwork, SeverityHigh, nil},

	{"dubious ownership", CategoryConfiguration, SeverityHigh, nil},
	{"bad config", CategoryConfiguration, SeverityHigh, nil},
	{"please tell me who you are", CategoryConfiguration, SeverityHigh, nil},
	{"has no upstream branch", CategoryConfiguration, SeverityMedium, nil},
}

// Classify maps a failed invocation to a classified Error. It examines, in
// priority order: OS-level spawn failures, runner-enforced limits, known
// output patterns, and finally the exit code. The mapping is a pure function
// of the input error; it never re-runs anything.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		e := New(CategoryValidation, SeverityMedium, validation.Error())
		e.Err = err
		return e
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return classifyBare(err)
	}

	e := classifyCommand(cmdErr)
	e.ExitCode = cmdErr.ExitCode
	e.Command = cmdErr.CommandLine()
	e.Stdout = cmdErr.Stdout
	e.Stderr = cmdErr.Stderr
	return e
}

// classifyBare handles errors that never reached a subprocess, such as
// context validation and repository discovery failures.
func classifyBare(err error) *Error {
	var e *Error
	switch {
	case errors.Is(err, ErrGitNotFound):
		e = New(CategorySystem, SeverityCritical, "git executable not found")
	case errors.Is(err, ErrNotARepository):
		e = New(CategoryRepository, SeverityHigh, err.Error())
	case errors.Is(err, ErrInvalidArgument):
		e = New(CategoryValidation, SeverityMedium, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		e = New(CategorySystem, SeverityHigh, "operation timed out")
	case errors.Is(err, context.Canceled):
		e = New(CategorySystem, SeverityMedium, "operation canceled")
	default:
		e = New(CategoryOperation, SeverityHigh, err.Error())
	}
	e.Err = err
	return e
}

func classifyCommand(cmdErr *CommandError) *Error {
	// Spawn and runner-enforced failures take precedence over anything the
	// command may have printed.
	switch {
	case errors.Is(cmdErr.Err, exec.ErrNotFound):
		return withCause(New(CategorySystem, SeverityCritical, "git executable not found"), ErrGitNotFound, cmdErr)
	case errors.Is(cmdErr.Err, os.ErrPermission):
		return withCause(New(CategorySecurity, SeverityCritical, "permission denied executing git"), nil, cmdErr)
	case errors.Is(cmdErr.Err, ErrOutputLimitExceeded):
		return withCause(New(CategorySystem, SeverityHigh, "command output exceeded the configured limit"), nil, cmdErr)
	case errors.Is(cmdErr.Err, context.DeadlineExceeded):
		return withCause(New(CategorySystem, SeverityHigh, "command timed out"), ErrCommandTimeout, cmdErr)
	case errors.Is(cmdErr.Err, context.Canceled):
		return withCause(New(CategorySystem, SeverityMedium, "command canceled"), nil, cmdErr)
	}

	combined := strings.ToLower(cmdErr.Stderr + "\n" + cmdErr.Stdout)
	for _, rule := range stderrRules {
		if strings.Contains(combined, rule.substr) {
			return withCause(New(rule.category, rule.severity, failureMessage(cmdErr)), rule.sentinel, cmdErr)
		}
	}

	switch cmdErr.ExitCode {
	case 128:
		return withCause(New(CategoryRepository, SeverityHigh, failureMessage(cmdErr)), nil, cmdErr)
	case 129:
		return withCause(New(CategoryValidation, SeverityMedium, failureMessage(cmdErr)), nil, cmdErr)
	case 126:
		return withCause(New(CategorySecurity, SeverityHigh, failureMessage(cmdErr)), nil, cmdErr)
	case 127:
		return withCause(New(CategorySystem, SeverityCritical, failureMessage(cmdErr)), ErrGitNotFound, cmdErr)
	}

	if cmdErr.ExitCode < 0 {
		return withCause(New(CategorySystem, SeverityHigh, "git process terminated abnormally"), nil, cmdErr)
	}

	return withCause(New(CategoryOperation, SeverityHigh, failureMessage(cmdErr)), nil, cmdErr)
}

// withCause attaches the underlying command error, joined with an optional
// sentinel so callers can use errors.Is on the classified error.
func withCause(e *Error, sentinel error, cmdErr *CommandError) *Error {
	if sentinel != nil {
		e.Err = errors.Join(sentinel, cmdErr)
	} else {
		e.Err = cmdErr
	}
	return e
}

// failureMessage picks a one-line description for a command failure: the
// first stderr line when git printed one, a generic fallback otherwise.
func failureMessage(cmdErr *CommandError) string {
	if line := firstLine(cmdErr.Stderr); line != "" {
		return line
	}
	if len(cmdErr.Args) > 0 {
		return "git " + cmdErr.Args[0] + " failed"
	}
	return "git command failed"
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
