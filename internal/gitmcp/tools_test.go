package gitmcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
	"gitwire.dev/gitwire/internal/git"
)

// scriptedRunner records invocations and answers from runFunc.
type scriptedRunner struct {
	calls   [][]string
	runFunc func(workDir string, args []string) (git.RawResult, error)
}

func (r *scriptedRunner) Run(_ context.Context, workDir string, args ...string) (git.RawResult, error) {
	r.calls = append(r.calls, args)
	if r.runFunc == nil {
		return git.RawResult{}, nil
	}
	return r.runFunc(workDir, args)
}

func newTestDeps(runFunc func(workDir string, args []string) (git.RawResult, error)) (deps, *scriptedRunner) {
	runner := &scriptedRunner{runFunc: runFunc}
	svc := git.NewService(runner, slog.New(slog.DiscardHandler), nil, nil)
	return deps{ops: svc, tenant: "mcp-test"}, runner
}

// fakeRepo creates a directory that repository discovery accepts without the
// git binary.
func fakeRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "objects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o644))
	return dir
}

func TestNewServerRegistersTools(t *testing.T) {
	d, _ := newTestDeps(nil)

	server := NewServer("test", d.ops, d.tenant)

	require.NotNil(t, server)
}

func TestHandleStatus(t *testing.T) {
	t.Run("maps the parsed status into the tool output", func(t *testing.T) {
		porcelain := "# branch.oid 4f2a1c9\n" +
			"# branch.head main\n" +
			"# branch.upstream origin/main\n" +
			"# branch.ab +1 -2\n" +
			"1 M. N... 100644 100644 100644 aaa bbb internal/service.go\n" +
			"? notes.txt"
		d, runner := newTestDeps(func(workDir string, args []string) (git.RawResult, error) {
			return git.RawResult{Stdout: porcelain}, nil
		})

		_, out, err := handleStatus(d)(context.Background(), &mcp.CallToolRequest{}, StatusInput{WorkDir: fakeRepo(t)})

		require.NoError(t, err)
		require.Equal(t, "main", out.Branch)
		require.Equal(t, "origin/main", out.Upstream)
		require.Equal(t, 1, out.Ahead)
		require.Equal(t, 2, out.Behind)
		require.Equal(t, []string{"internal/service.go"}, out.StagedModified)
		require.Equal(t, []string{"notes.txt"}, out.Untracked)
		require.False(t, out.Clean)
		require.Len(t, runner.calls, 1)
	})

	t.Run("a missing repository surfaces as a structured error payload", func(t *testing.T) {
		d, runner := newTestDeps(nil)

		_, _, err := handleStatus(d)(context.Background(), &mcp.CallToolRequest{}, StatusInput{WorkDir: t.TempDir()})

		require.Error(t, err)
		var payload errorPayload
		require.NoError(t, json.Unmarshal([]byte(err.Error()), &payload))
		require.Equal(t, "git_status", payload.Tool)
		require.Equal(t, "repository", payload.Category)
		require.NotEmpty(t, payload.Recovery)
		require.Empty(t, runner.calls)
	})
}

func TestHandleMerge(t *testing.T) {
	t.Run("a conflicted merge reports paths instead of failing", func(t *testing.T) {
		stdout := "Auto-merging main.go\n" +
			"CONFLICT (content): Merge conflict in main.go\n" +
			"CONFLICT (content): Merge conflict in go.sum\n" +
			"Automatic merge failed; fix conflicts and then commit the result.\n"
		d, _ := newTestDeps(func(workDir string, args []string) (git.RawResult, error) {
			return git.RawResult{}, gitwireerrors.NewCommandError("git", args, 1, stdout, "", nil)
		})

		_, out, err := handleMerge(d)(context.Background(), &mcp.CallToolRequest{}, MergeInput{
			WorkDir: fakeRepo(t),
			Ref:     "feature/retry",
		})

		require.NoError(t, err)
		require.False(t, out.Merged)
		require.Equal(t, []Conflict{
			{Reason: "content", Path: "main.go"},
			{Reason: "content", Path: "go.sum"},
		}, out.Conflicts)
	})

	t.Run("contradictory options surface as a validation payload", func(t *testing.T) {
		d, runner := newTestDeps(nil)

		_, _, err := handleMerge(d)(context.Background(), &mcp.CallToolRequest{}, MergeInput{
			WorkDir: fakeRepo(t),
			Ref:     "main",
			NoFF:    true,
			FFOnly:  true,
		})

		require.Error(t, err)
		var payload errorPayload
		require.NoError(t, json.Unmarshal([]byte(err.Error()), &payload))
		require.Equal(t, "git_merge", payload.Tool)
		require.Equal(t, "validation", payload.Category)
		require.False(t, payload.Retryable)
		require.Empty(t, runner.calls)
	})
}

func TestHandleStage(t *testing.T) {
	t.Run("encodes paths after the separator", func(t *testing.T) {
		d, runner := newTestDeps(nil)

		_, out, err := handleStage(d)(context.Background(), &mcp.CallToolRequest{}, StageInput{
			WorkDir: fakeRepo(t),
			Paths:   []string{"cmd/", "internal/service.go"},
		})

		require.NoError(t, err)
		require.True(t, out.Staged)
		require.Equal(t, [][]string{{"add", "--", "cmd/", "internal/service.go"}}, runner.calls)
	})
}

func TestHandleInit(t *testing.T) {
	t.Run("runs in a directory that is not yet a repository", func(t *testing.T) {
		dir := t.TempDir()
		d, runner := newTestDeps(func(workDir string, args []string) (git.RawResult, error) {
			return git.RawResult{Stdout: "Initialized empty Git repository in " + workDir}, nil
		})

		_, out, err := handleInit(d)(context.Background(), &mcp.CallToolRequest{}, InitInput{
			WorkDir:       dir,
			InitialBranch: "trunk",
		})

		require.NoError(t, err)
		require.Equal(t, dir, out.Path)
		require.False(t, out.Bare)
		require.Equal(t, [][]string{{"init", "--initial-branch=trunk"}}, runner.calls)
	})
}

func TestHandleTagCreate(t *testing.T) {
	t.Run("reports annotated when a message was given", func(t *testing.T) {
		d, runner := newTestDeps(nil)

		_, out, err := handleTagCreate(d)(context.Background(), &mcp.CallToolRequest{}, TagCreateInput{
			WorkDir: fakeRepo(t),
			Name:    "v1.2.0",
			Message: "release v1.2.0",
		})

		require.NoError(t, err)
		require.True(t, out.Annotated)
		require.Equal(t, "v1.2.0", out.Name)
		require.Equal(t, [][]string{{"tag", "-a", "-m", "release v1.2.0", "v1.2.0"}}, runner.calls)
	})
}

func TestToCommit(t *testing.T) {
	commit := git.Commit{
		SHA:         "4f2a1c9d8e7b6a5f4e3d2c1b0a9f8e7d6c5b4a39",
		Short:       "4f2a1c9",
		Author:      "Grace Hopper",
		AuthorEmail: "grace@example.com",
		Date:        time.Unix(1700000000, 0),
		Parents:     []string{"aaa", "bbb"},
		Decorations: []string{"HEAD -> main", "tag: v1.0.0"},
		Subject:     "compile to machine code",
		Body:        "details\nacross lines",
	}

	out := toCommit(commit)

	require.Equal(t, "2023-11-14T22:13:20Z", out.Date)
	require.Equal(t, commit.SHA, out.SHA)
	require.Equal(t, []string{"HEAD -> main", "tag: v1.0.0"}, out.Refs)
	require.Equal(t, "details\nacross lines", out.Body)
}

func TestToolErrorKeepsClassificationDetail(t *testing.T) {
	cmdErr := gitwireerrors.NewCommandError("git", []string{"push", "origin", "main"}, 128,
		"", "fatal: unable to access 'https://example.com/': Could not resolve host", nil)

	err := toolError("git_push", cmdErr)

	var payload errorPayload
	require.NoError(t, json.Unmarshal([]byte(err.Error()), &payload))
	require.Equal(t, "network", payload.Category)
	require.True(t, payload.Retryable)
	require.Positive(t, payload.BackoffMS)
	require.Equal(t, 128, payload.ExitCode)
	require.Contains(t, payload.Command, "push")
}
