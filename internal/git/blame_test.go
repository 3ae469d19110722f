package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseBlame(t *testing.T) {
	t.Run("attributes lines and replays cached commit metadata", func(t *testing.T) {
		out := `9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 1 1 2
author Grace Hopper
author-mail <grace@example.com>
author-time 1700000000
author-tz +0000
committer Grace Hopper
committer-mail <grace@example.com>
committer-time 1700000000
committer-tz +0000
summary Add parser skeleton
filename parser.go
	package parser
9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 2 2

4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de 1 3 1
author Alan Turing
author-mail <alan@example.com>
author-time 1710000000
author-tz +0000
committer Alan Turing
committer-mail <alan@example.com>
committer-time 1710000000
committer-tz +0000
summary Handle empty input
previous 9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca parser.go
filename parser.go
	func Parse() {}`

		result := parseBlame(RawResult{Stdout: out})

		require.Len(t, result.Lines, 3)

		first := result.Lines[0]
		require.Equal(t, "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca", first.SHA)
		require.Equal(t, "Grace Hopper", first.Author)
		require.Equal(t, "grace@example.com", first.AuthorMail)
		require.Equal(t, time.Unix(1700000000, 0), first.AuthorTime)
		require.Equal(t, "Add parser skeleton", first.Summary)
		require.Equal(t, 1, first.OrigLine)
		require.Equal(t, 1, first.FinalLine)
		require.Equal(t, "package parser", first.Content)

		// The second block carries no metadata of its own; it must inherit
		// the first commit's cached metadata.
		second := result.Lines[1]
		require.Equal(t, first.SHA, second.SHA)
		require.Equal(t, "Grace Hopper", second.Author)
		require.Equal(t, "Add parser skeleton", second.Summary)
		require.Equal(t, 2, second.FinalLine)
		require.Empty(t, second.Content)

		third := result.Lines[2]
		require.Equal(t, "4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", third.SHA)
		require.Equal(t, "Alan Turing", third.Author)
		require.Equal(t, "alan@example.com", third.AuthorMail)
		require.Equal(t, 1, third.OrigLine)
		require.Equal(t, 3, third.FinalLine)
		require.Equal(t, "func Parse() {}", third.Content)
	})

	t.Run("keeps tab-indented file content intact", func(t *testing.T) {
		out := "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 1 1 1\n" +
			"author Grace Hopper\n" +
			"author-mail <grace@example.com>\n" +
			"author-time 1700000000\n" +
			"summary Indent with tabs\n" +
			"filename main.go\n" +
			"\t\treturn nil"

		result := parseBlame(RawResult{Stdout: out})

		require.Len(t, result.Lines, 1)
		require.Equal(t, "\treturn nil", result.Lines[0].Content)
	})

	t.Run("recovers a trailing empty line lost to the output trim", func(t *testing.T) {
		out := "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 1 1 2\n" +
			"author Grace Hopper\n" +
			"author-mail <grace@example.com>\n" +
			"author-time 1700000000\n" +
			"summary Add parser skeleton\n" +
			"filename main.go\n" +
			"\tpackage main\n" +
			"9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 2 2"

		result := parseBlame(RawResult{Stdout: out})

		require.Len(t, result.Lines, 2)
		require.Equal(t, "Grace Hopper", result.Lines[1].Author)
		require.Equal(t, 2, result.Lines[1].FinalLine)
		require.Empty(t, result.Lines[1].Content)
	})

	t.Run("parses empty output as no lines", func(t *testing.T) {
		result := parseBlame(RawResult{})

		require.NotNil(t, result.Lines)
		require.Empty(t, result.Lines)
	})
}

func TestParseBlameHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{name: "group header with size", line: "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 1 1 2", ok: true},
		{name: "continuation header", line: "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca 2 2", ok: true},
		{name: "metadata line", line: "author Grace Hopper", ok: false},
		{name: "short hash", line: "9fceb02 1 1", ok: false},
		{name: "non-numeric line number", line: "9fceb02aa95f2a8f4ae24c6f2f3a2de21e332fca one 1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseBlameHeader(tt.line)
			require.Equal(t, tt.ok, ok)
		})
	}
}
