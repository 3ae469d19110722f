package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDiffstat(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want DiffStat
	}{
		{
			name: "full summary",
			out:  " 3 files changed, 45 insertions(+), 12 deletions(-)",
			want: DiffStat{Files: 3, Insertions: 45, Deletions: 12},
		},
		{
			name: "singular forms",
			out:  " 1 file changed, 1 insertion(+)",
			want: DiffStat{Files: 1, Insertions: 1},
		},
		{
			name: "deletions only",
			out:  " 2 files changed, 4 deletions(-)",
			want: DiffStat{Files: 2, Deletions: 4},
		},
		{
			name: "summary below the per-file table",
			out: " internal/server.go | 40 ++++++++++----\n" +
				" docs/readme.md     |  5 +--\n" +
				" 2 files changed, 38 insertions(+), 7 deletions(-)",
			want: DiffStat{Files: 2, Insertions: 38, Deletions: 7},
		},
		{
			name: "no summary line",
			out:  "diff --git a/main.go b/main.go",
			want: DiffStat{},
		},
		{
			name: "empty output",
			out:  "",
			want: DiffStat{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseDiffstat(tt.out))
		})
	}
}

func TestEncodeDiffArgs(t *testing.T) {
	t.Run("encodes a staged name-only diff", func(t *testing.T) {
		args, err := encodeDiffArgs(DiffOptions{Staged: true, NameOnly: true})

		require.NoError(t, err)
		require.Equal(t, []string{"diff", "--cached", "--name-only"}, args)
	})

	t.Run("encodes a revision range with paths", func(t *testing.T) {
		args, err := encodeDiffArgs(DiffOptions{
			Base:    "main",
			Target:  "feature/retry",
			Stat:    true,
			Unified: 5,
			Paths:   []string{"internal/"},
		})

		require.NoError(t, err)
		require.Equal(t, []string{"diff", "--stat", "--unified=5", "main", "feature/retry", "--", "internal/"}, args)
	})

	t.Run("rejects a target without a base", func(t *testing.T) {
		_, err := encodeDiffArgs(DiffOptions{Target: "feature/retry"})

		require.Error(t, err)
	})

	t.Run("rejects a base that looks like an option", func(t *testing.T) {
		_, err := encodeDiffArgs(DiffOptions{Base: "--output=/tmp/x"})

		require.Error(t, err)
	})
}

func TestParseDiff(t *testing.T) {
	t.Run("splits paths in name-only mode", func(t *testing.T) {
		raw := RawResult{Stdout: "internal/server.go\ndocs/readme.md"}

		result := parseDiff(raw, DiffOptions{NameOnly: true})

		require.Equal(t, []string{"internal/server.go", "docs/readme.md"}, result.Files)
		require.Empty(t, result.Patch)
	})

	t.Run("flags binary changes", func(t *testing.T) {
		raw := RawResult{Stdout: "diff --git a/logo.png b/logo.png\nBinary files a/logo.png and b/logo.png differ"}

		result := parseDiff(raw, DiffOptions{})

		require.True(t, result.Binary)
		require.Contains(t, result.Patch, "Binary files")
	})

	t.Run("maps empty output to no files", func(t *testing.T) {
		result := parseDiff(RawResult{}, DiffOptions{NameOnly: true})

		require.NotNil(t, result.Files)
		require.Empty(t, result.Files)
	})
}
