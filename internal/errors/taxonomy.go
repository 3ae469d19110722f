package errors

import (
	"fmt"
	"time"
)

// Category identifies the failure domain of a classified error.
type Category string

const (
	// CategorySystem covers process and filesystem failures: missing binary,
	// timeouts, killed subprocesses, output overruns.
	CategorySystem Category = "system"

	// CategoryValidation covers malformed input rejected before or by the
	// command itself: bad refs, unknown paths, usage errors.
	CategoryValidation Category = "validation"

	// CategoryOperation covers command-level failures with no more specific
	// classification, including merge conflicts.
	CategoryOperation Category = "operation"

	// CategoryRepository covers a missing, invalid, locked, or conflicted
	// target repository.
	CategoryRepository Category = "repository"

	// CategoryNetwork covers remote-reachability failures.
	CategoryNetwork Category = "network"

	// CategoryConfiguration covers missing or unusable settings.
	CategoryConfiguration Category = "configuration"

	// CategorySecurity covers permission and credential failures.
	CategorySecurity Category = "security"
)

// Severity grades a classified error independently of its category.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// recoverySteps maps each category to a fixed list of human-readable
// suggestions. The lists are part of the error contract and stay stable.
var recoverySteps = map[Category][]string{
	CategorySystem: {
		"verify git is installed and on PATH",
		"check available disk space and memory",
		"raise the command timeout or output limit if the operation is legitimately large",
	},
	CategoryValidation: {
		"check the operation arguments",
		"verify the referenced branches, revisions, and paths exist",
	},
	CategoryOperation: {
		"inspect the command output for details",
		"resolve any conflicted or in-progress state, then re-run",
	},
	CategoryRepository: {
		"verify the working directory is inside a git repository",
		"check for stale lock files under .git",
		"retry after any competing git process finishes",
	},
	CategoryNetwork: {
		"check network connectivity",
		"verify the remote URL",
		"verify credentials for the remote",
	},
	CategoryConfiguration: {
		"check the service configuration",
		"verify required settings are present and well-formed",
	},
	CategorySecurity: {
		"verify credentials",
		"check file and repository permissions",
	},
}

// backoffByCategory holds the suggested base delay before a retry. Network
// failures get the longest delay, plain operation failures the shortest.
var backoffByCategory = map[Category]time.Duration{
	CategoryNetwork:    5 * time.Second,
	CategoryRepository: 2 * time.Second,
	CategoryOperation:  500 * time.Millisecond,
}

// Error is the classified form of a failed git operation. It is created once
// at the failure point by Classify and is immutable afterwards.
type Error struct {
	Category Category
	Severity Severity
	Message  string
	Recovery []string

	// Raw diagnostic detail from the failed invocation.
	ExitCode int
	Command  string
	Stdout   string
	Stderr   string

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Category, e.Severity, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may reasonably retry the operation.
// Validation, Security, and Configuration errors never are, nor is anything
// Critical. Network errors always are. Operation and Repository errors are
// retryable below Critical.
func (e *Error) Retryable() bool {
	if e.Severity == SeverityCritical {
		return false
	}
	switch e.Category {
	case CategoryNetwork:
		return true
	case CategoryOperation, CategoryRepository:
		return true
	default:
		return false
	}
}

// Backoff returns the suggested base delay before retrying. Zero means the
// error is not retryable or needs no delay.
func (e *Error) Backoff() time.Duration {
	if !e.Retryable() {
		return 0
	}
	return backoffByCategory[e.Category]
}

// New creates a classified error with the category's standard recovery steps.
func New(category Category, severity Severity, message string) *Error {
	return &Error{
		Category: category,
		Severity: severity,
		Message:  message,
		Recovery: recoverySteps[category],
	}
}

// Newf creates a classified error with a formatted message.
func Newf(category Category, severity Severity, format string, args ...any) *Error {
	return New(category, severity, fmt.Sprintf(format, args...))
}
