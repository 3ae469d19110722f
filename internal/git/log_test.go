package git

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func logRecord(fields ...string) string {
	return strings.Join(fields, fieldSep) + recordSep
}

func TestParseCommits(t *testing.T) {
	t.Run("parses a merge commit with decorations and a multiline body", func(t *testing.T) {
		out := logRecord(
			"4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de",
			"4a5e1e4",
			"Grace Hopper",
			"grace@example.com",
			"1756000000",
			"9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 1d3852f8a9c5e7b2d4f6a8c0e2b4d6f8a0c2e4b6",
			"HEAD -> main, origin/main, tag: v1.2.0",
			"Merge branch 'feature/retry'",
			"Adds exponential backoff.\n\nCloses the connection on the final failure.",
		)

		commits := parseCommits(out)

		require.Len(t, commits, 1)
		c := commits[0]
		require.Equal(t, "4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", c.SHA)
		require.Equal(t, "4a5e1e4", c.Short)
		require.Equal(t, "Grace Hopper", c.Author)
		require.Equal(t, "grace@example.com", c.AuthorEmail)
		require.Equal(t, time.Unix(1756000000, 0), c.Date)
		require.Equal(t, []string{
			"9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca",
			"1d3852f8a9c5e7b2d4f6a8c0e2b4d6f8a0c2e4b6",
		}, c.Parents)
		require.Equal(t, []string{"HEAD -> main", "origin/main", "tag: v1.2.0"}, c.Decorations)
		require.Equal(t, "Merge branch 'feature/retry'", c.Subject)
		require.Equal(t, "Adds exponential backoff.\n\nCloses the connection on the final failure.", c.Body)
	})

	t.Run("keeps separator-free free text intact", func(t *testing.T) {
		out := logRecord(
			"9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca",
			"9fceb02",
			"A. Author; with \"punctuation\"",
			"author@example.com",
			"1756000010",
			"",
			"",
			"fix: handle | and > in subjects",
			"",
		)

		commits := parseCommits(out)

		require.Len(t, commits, 1)
		require.Equal(t, "A. Author; with \"punctuation\"", commits[0].Author)
		require.Equal(t, "fix: handle | and > in subjects", commits[0].Subject)
		require.Empty(t, commits[0].Parents)
		require.NotNil(t, commits[0].Parents)
		require.Empty(t, commits[0].Decorations)
	})

	t.Run("returns an empty slice for empty output", func(t *testing.T) {
		commits := parseCommits("")

		require.NotNil(t, commits)
		require.Empty(t, commits)
	})

	t.Run("skips records with too few fields", func(t *testing.T) {
		out := "garbage" + recordSep + logRecord(
			"4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de",
			"4a5e1e4",
			"Grace Hopper",
			"grace@example.com",
			"1756000000",
			"",
			"",
			"Initial commit",
			"",
		)

		commits := parseCommits(out)

		require.Len(t, commits, 1)
		require.Equal(t, "Initial commit", commits[0].Subject)
	})

	t.Run("falls back to the zero time for an unparseable timestamp", func(t *testing.T) {
		out := logRecord(
			"4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de",
			"4a5e1e4",
			"Grace Hopper",
			"grace@example.com",
			"not-a-timestamp",
			"",
			"",
			"Initial commit",
			"",
		)

		commits := parseCommits(out)

		require.Len(t, commits, 1)
		require.Equal(t, time.Unix(0, 0), commits[0].Date)
	})
}

func TestEncodeLogArgs(t *testing.T) {
	t.Run("encodes every option in a stable order", func(t *testing.T) {
		args, err := encodeLogArgs(LogOptions{
			Ref:         "main",
			MaxCount:    10,
			Skip:        5,
			Author:      "grace",
			Since:       "2026-01-01",
			Until:       "2026-02-01",
			Grep:        "retry",
			FirstParent: true,
			All:         true,
			Paths:       []string{"internal/", "docs/readme.md"},
		})

		require.NoError(t, err)
		require.Equal(t, []string{
			"log", "--pretty=format:" + logFormat,
			"-n", "10",
			"--skip", "5",
			"--first-parent",
			"--all",
			"--author", "grace",
			"--since", "2026-01-01",
			"--until", "2026-02-01",
			"--grep", "retry",
			"main",
			"--", "internal/", "docs/readme.md",
		}, args)
	})

	t.Run("rejects a ref that looks like an option", func(t *testing.T) {
		_, err := encodeLogArgs(LogOptions{Ref: "--exec=evil"})

		require.Error(t, err)
	})

	t.Run("rejects empty paths", func(t *testing.T) {
		_, err := encodeLogArgs(LogOptions{Paths: []string{""}})

		require.Error(t, err)
	})
}
