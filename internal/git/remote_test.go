package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemotes(t *testing.T) {
	t.Run("pairs fetch and push lines per remote", func(t *testing.T) {
		out := "origin\thttps://github.com/acme/gitwire.git (fetch)\n" +
			"origin\thttps://github.com/acme/gitwire.git (push)\n" +
			"upstream\tgit@github.com:acme/upstream.git (fetch)\n" +
			"upstream\tgit@github.com:acme/upstream.git (push)"

		remotes := parseRemotes(out)

		require.Equal(t, []Remote{
			{Name: "origin", FetchURL: "https://github.com/acme/gitwire.git", PushURL: "https://github.com/acme/gitwire.git"},
			{Name: "upstream", FetchURL: "git@github.com:acme/upstream.git", PushURL: "git@github.com:acme/upstream.git"},
		}, remotes)
	})

	t.Run("keeps distinct push urls", func(t *testing.T) {
		out := "origin\thttps://github.com/acme/gitwire.git (fetch)\n" +
			"origin\tgit@github.com:acme/gitwire.git (push)"

		remotes := parseRemotes(out)

		require.Len(t, remotes, 1)
		require.Equal(t, "https://github.com/acme/gitwire.git", remotes[0].FetchURL)
		require.Equal(t, "git@github.com:acme/gitwire.git", remotes[0].PushURL)
	})

	t.Run("parses empty output as no remotes", func(t *testing.T) {
		remotes := parseRemotes("")

		require.NotNil(t, remotes)
		require.Empty(t, remotes)
	})
}
