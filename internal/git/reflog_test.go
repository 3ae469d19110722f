package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func reflogRecord(sha, short, selector, subject, timestamp string) string {
	return sha + fieldSep + short + fieldSep + selector + fieldSep + subject + fieldSep + timestamp + recordSep
}

func TestParseReflog(t *testing.T) {
	t.Run("parses entries with their selector index and action", func(t *testing.T) {
		out := reflogRecord(
			"4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", "4a5e1e4",
			"HEAD@{0}", "commit: add connection retry", "1700000000",
		) + reflogRecord(
			"9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca", "9fceb02",
			"HEAD@{1}", "checkout: moving from main to feature/retry", "1699990000",
		)

		entries := parseReflog(out)

		require.Len(t, entries, 2)
		require.Equal(t, 0, entries[0].Index)
		require.Equal(t, "HEAD@{0}", entries[0].Selector)
		require.Equal(t, "4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", entries[0].SHA)
		require.Equal(t, "4a5e1e4", entries[0].Short)
		require.Equal(t, "commit", entries[0].Action)
		require.Equal(t, "add connection retry", entries[0].Subject)
		require.Equal(t, time.Unix(1700000000, 0), entries[0].Date)

		require.Equal(t, 1, entries[1].Index)
		require.Equal(t, "checkout", entries[1].Action)
		require.Equal(t, "moving from main to feature/retry", entries[1].Subject)
		require.Equal(t, time.Unix(1699990000, 0), entries[1].Date)
	})

	t.Run("keeps an undividable subject as the action", func(t *testing.T) {
		out := reflogRecord(
			"4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", "4a5e1e4",
			"HEAD@{0}", "initial pull", "1700000000",
		)

		entries := parseReflog(out)

		require.Len(t, entries, 1)
		require.Equal(t, "initial pull", entries[0].Action)
		require.Empty(t, entries[0].Subject)
	})

	t.Run("parses empty output as no entries", func(t *testing.T) {
		entries := parseReflog("")

		require.NotNil(t, entries)
		require.Empty(t, entries)
	})
}

func TestParseSelectorIndex(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		index    int
	}{
		{name: "head selector", selector: "HEAD@{3}", index: 3},
		{name: "branch selector", selector: "refs/heads/main@{0}", index: 0},
		{name: "date selector", selector: "HEAD@{2026-08-01 10:00:00 +0000}", index: -1},
		{name: "no braces", selector: "HEAD", index: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.index, parseSelectorIndex(tt.selector))
		})
	}
}
