package git

import (
	"strings"

	"github.com/kballard/go-shellquote"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// validateArgs rejects argument lists no subprocess should ever see. Tokens
// are handed to the OS argument vector directly, so shell metacharacters are
// inert; NUL bytes are the one thing argv cannot carry.
func validateArgs(args []string) error {
	if len(args) == 0 {
		return gitwireerrors.NewValidationError("arguments", "empty argument list")
	}
	for _, arg := range args {
		if strings.ContainsRune(arg, '\x00') {
			return gitwireerrors.NewValidationError("arguments", "token contains NUL byte")
		}
	}
	return nil
}

// validateRef checks a user-supplied ref, branch, or revision name before it
// is placed in an argument list. Git itself refuses names that start with a
// dash, and rejecting them here also keeps a name from ever being read as an
// option flag.
func validateRef(field, name string) error {
	if name == "" {
		return gitwireerrors.NewValidationError(field, "must not be empty")
	}
	if strings.HasPrefix(name, "-") {
		return gitwireerrors.NewValidationError(field, "must not start with '-'")
	}
	if strings.ContainsRune(name, '\x00') {
		return gitwireerrors.NewValidationError(field, "contains NUL byte")
	}
	return nil
}

// validatePaths checks a path list destined for the far side of a "--"
// separator.
func validatePaths(field string, paths []string) error {
	for _, p := range paths {
		if p == "" {
			return gitwireerrors.NewValidationError(field, "must not contain empty paths")
		}
		if strings.ContainsRune(p, '\x00') {
			return gitwireerrors.NewValidationError(field, "path contains NUL byte")
		}
	}
	return nil
}

// displayArgs renders an argument list as a single shell-quoted string for
// logging. The quoted form is never executed.
func displayArgs(args []string) string {
	return shellquote.Join(append([]string{"git"}, args...)...)
}
