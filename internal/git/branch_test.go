package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBranches(t *testing.T) {
	t.Run("parses local branches with the current marker", func(t *testing.T) {
		out := "main\t4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de\t*\torigin/main\n" +
			"feature/retry\t9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca\t \t"

		branches := parseBranches(out)

		require.Equal(t, []Branch{
			{Name: "main", SHA: "4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", Upstream: "origin/main", Current: true},
			{Name: "feature/retry", SHA: "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca", Upstream: "", Current: false},
		}, branches)
	})

	t.Run("tolerates trailing fields trimmed off the last line", func(t *testing.T) {
		// The runner trims surrounding whitespace, which can shorten the
		// final record when the branch is not current and has no upstream.
		out := "main\t4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de\t*\torigin/main\n" +
			"feature/retry\t9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca"

		branches := parseBranches(out)

		require.Len(t, branches, 2)
		require.Equal(t, "feature/retry", branches[1].Name)
		require.False(t, branches[1].Current)
		require.Empty(t, branches[1].Upstream)
	})

	t.Run("keeps the current marker when it survives the trim", func(t *testing.T) {
		out := "main\t4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de\t*"

		branches := parseBranches(out)

		require.Len(t, branches, 1)
		require.True(t, branches[0].Current)
	})

	t.Run("parses empty output as no branches", func(t *testing.T) {
		branches := parseBranches("")

		require.NotNil(t, branches)
		require.Empty(t, branches)
	})
}
