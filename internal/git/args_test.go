package git

import (
	"strings"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestValidateArgs(t *testing.T) {
	t.Run("accepts ordinary argument lists", func(t *testing.T) {
		require.NoError(t, validateArgs([]string{"log", "-n", "10"}))
	})

	t.Run("accepts shell metacharacters as inert tokens", func(t *testing.T) {
		require.NoError(t, validateArgs([]string{"commit", "-m", "a; rm -rf $(HOME) | tee"}))
	})

	t.Run("rejects an empty list", func(t *testing.T) {
		require.Error(t, validateArgs(nil))
	})

	t.Run("rejects NUL bytes", func(t *testing.T) {
		require.Error(t, validateArgs([]string{"log", "a\x00b"}))
	})
}

func TestValidateRef(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		valid bool
	}{
		{name: "branch name", ref: "feature/retry", valid: true},
		{name: "revision expression", ref: "HEAD~3", valid: true},
		{name: "full sha", ref: "4a5e1e4baab44ec05a6f23b5e13f0ecba843d0de", valid: true},
		{name: "empty", ref: "", valid: false},
		{name: "leading dash", ref: "--exec=touch /tmp/pwned", valid: false},
		{name: "single dash", ref: "-", valid: false},
		{name: "embedded NUL", ref: "main\x00", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRef("ref", tt.ref)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestDisplayArgs(t *testing.T) {
	t.Run("quotes tokens containing spaces", func(t *testing.T) {
		require.Equal(t, "git commit -m 'two words'", displayArgs([]string{"commit", "-m", "two words"}))
	})

	t.Run("renders plain tokens unquoted", func(t *testing.T) {
		require.Equal(t, "git status --porcelain=v2", displayArgs([]string{"status", "--porcelain=v2"}))
	})
}

func TestDisplayArgsRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("splitting the rendered command line recovers the argument vector", prop.ForAll(
		func(args []string) bool {
			rendered := displayArgs(args)
			split, err := shellquote.Split(rendered)
			if err != nil {
				return false
			}
			if len(split) != len(args)+1 || split[0] != "git" {
				return false
			}
			for i, arg := range args {
				if split[i+1] != arg {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AnyString().SuchThat(func(s string) bool {
			return !strings.ContainsRune(s, '\x00')
		})),
	))

	properties.TestingRun(t)
}
