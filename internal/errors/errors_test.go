package errors_test

import (
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/require"

	"gitwire.dev/gitwire/internal/errors"
)

func TestCommandError(t *testing.T) {
	t.Run("message includes the quoted command line and stderr", func(t *testing.T) {
		cmdErr := errors.NewCommandError("git", []string{"commit", "-m", "two words"}, 1, "", "error: boom", stderrors.New("exit status 1"))

		msg := cmdErr.Error()
		require.Contains(t, msg, "git commit -m 'two words'")
		require.Contains(t, msg, "(exit 1)")
		require.Contains(t, msg, "stderr: error: boom")
	})

	t.Run("unwraps to the underlying error", func(t *testing.T) {
		underlying := stderrors.New("exit status 1")
		cmdErr := errors.NewCommandError("git", []string{"status"}, 1, "", "", underlying)

		require.True(t, stderrors.Is(cmdErr, underlying))
	})

	t.Run("command line round-trips plain arguments unquoted", func(t *testing.T) {
		cmdErr := errors.NewCommandError("git", []string{"log", "--oneline", "-n", "5"}, 0, "", "", nil)
		require.Equal(t, "git log --oneline -n 5", cmdErr.CommandLine())
	})
}

func TestValidationError(t *testing.T) {
	t.Run("matches the invalid argument sentinel", func(t *testing.T) {
		err := errors.NewValidationError("path", "contains NUL byte")
		require.True(t, stderrors.Is(err, errors.ErrInvalidArgument))
		require.Equal(t, "invalid path: contains NUL byte", err.Error())
	})

	t.Run("field is optional", func(t *testing.T) {
		err := errors.NewValidationError("", "empty argument list")
		require.Equal(t, "empty argument list", err.Error())
	})
}
