package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommitSummary(t *testing.T) {
	t.Run("parses the summary line and diffstat", func(t *testing.T) {
		out := "[main 4a5e1e4] Add connection retry\n" +
			" 2 files changed, 38 insertions(+), 7 deletions(-)"

		result := parseCommitSummary(out)

		require.Equal(t, "main", result.Branch)
		require.False(t, result.Detached)
		require.Equal(t, "4a5e1e4", result.SHA)
		require.Equal(t, "Add connection retry", result.Subject)
		require.Equal(t, DiffStat{Files: 2, Insertions: 38, Deletions: 7}, result.Stat)
	})

	t.Run("strips the root commit marker", func(t *testing.T) {
		out := "[main (root-commit) 4a5e1e4] Initial commit\n" +
			" 1 file changed, 1 insertion(+)"

		result := parseCommitSummary(out)

		require.Equal(t, "main", result.Branch)
		require.Equal(t, "4a5e1e4", result.SHA)
		require.Equal(t, "Initial commit", result.Subject)
	})

	t.Run("recognizes a detached head commit", func(t *testing.T) {
		out := "[detached HEAD 9fceb02] Hotfix on a pinned revision"

		result := parseCommitSummary(out)

		require.True(t, result.Detached)
		require.Empty(t, result.Branch)
		require.Equal(t, "9fceb02", result.SHA)
	})

	t.Run("handles branch names containing spaces in the subject position", func(t *testing.T) {
		out := "[feature/retry 9fceb02] fix: retry [with brackets]"

		result := parseCommitSummary(out)

		require.Equal(t, "feature/retry", result.Branch)
		require.Equal(t, "fix: retry [with brackets]", result.Subject)
	})
}

func TestEncodeCommitArgs(t *testing.T) {
	t.Run("keeps a message with spaces as one token", func(t *testing.T) {
		args, err := encodeCommitArgs(CommitOptions{Message: "fix: handle spaces and 'quotes'"})

		require.NoError(t, err)
		require.Equal(t, []string{"commit", "-m", "fix: handle spaces and 'quotes'"}, args)
	})

	t.Run("encodes every flag in a stable order", func(t *testing.T) {
		args, err := encodeCommitArgs(CommitOptions{
			Message:    "release",
			All:        true,
			AllowEmpty: true,
			SignOff:    true,
			NoVerify:   true,
			Author:     "Grace Hopper <grace@example.com>",
		})

		require.NoError(t, err)
		require.Equal(t, []string{
			"commit", "--all", "-m", "release", "--allow-empty", "--signoff", "--no-verify",
			"--author", "Grace Hopper <grace@example.com>",
		}, args)
	})

	t.Run("amends without a message by reusing the previous one", func(t *testing.T) {
		args, err := encodeCommitArgs(CommitOptions{Amend: true})

		require.NoError(t, err)
		require.Equal(t, []string{"commit", "--amend", "--no-edit"}, args)
	})

	t.Run("rejects an empty message outside of amend", func(t *testing.T) {
		_, err := encodeCommitArgs(CommitOptions{})

		require.Error(t, err)
	})
}
