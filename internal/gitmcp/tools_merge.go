package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Merge tool ---

// MergeInput names the ref to merge and how.
type MergeInput struct {
	WorkDir string `json:"work_dir"          jsonschema:"absolute path of a directory inside the repository"`
	Ref     string `json:"ref"               jsonschema:"branch or revision to merge into the current branch"`
	NoFF    bool   `json:"no_ff,omitempty"   jsonschema:"always create a merge commit"`
	FFOnly  bool   `json:"ff_only,omitempty" jsonschema:"fail unless the merge is a fast-forward"`
	Squash  bool   `json:"squash,omitempty"  jsonschema:"stage the merged changes without committing"`
	Message string `json:"message,omitempty" jsonschema:"message for the merge commit"`
}

// MergeOutput reports the outcome; on conflicts merged is false and the
// conflicted paths are listed while the merge stays in progress.
type MergeOutput struct {
	Merged      bool       `json:"merged"              jsonschema:"true when the merge completed"`
	FastForward bool       `json:"fast_forward"        jsonschema:"true when the merge was a fast-forward"`
	Conflicts   []Conflict `json:"conflicts,omitempty" jsonschema:"conflicted paths when the merge stopped"`
}

func handleMerge(d deps) mcp.ToolHandlerFor[MergeInput, MergeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MergeInput) (*mcp.CallToolResult, MergeOutput, error) {
		result, err := d.ops.Merge(ctx, d.newContext(in.WorkDir), git.MergeOptions{
			Ref:     in.Ref,
			NoFF:    in.NoFF,
			FFOnly:  in.FFOnly,
			Squash:  in.Squash,
			Message: in.Message,
		})
		if err != nil {
			return nil, MergeOutput{}, toolError("git_merge", err)
		}
		out := MergeOutput{
			Merged:      result.Merged,
			FastForward: result.FastForward,
			Conflicts:   toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Merge abort tool ---

// MergeAbortInput identifies the repository.
type MergeAbortInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// MergeAbortOutput confirms the abort.
type MergeAbortOutput struct {
	Aborted bool `json:"aborted" jsonschema:"true when the merge was aborted"`
}

func handleMergeAbort(d deps) mcp.ToolHandlerFor[MergeAbortInput, MergeAbortOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MergeAbortInput) (*mcp.CallToolResult, MergeAbortOutput, error) {
		if err := d.ops.AbortMerge(ctx, d.newContext(in.WorkDir)); err != nil {
			return nil, MergeAbortOutput{}, toolError("git_merge_abort", err)
		}
		return nil, MergeAbortOutput{Aborted: true}, nil
	}
}

// --- Cherry-pick tool ---

// CherryPickInput names the commits to apply.
type CherryPickInput struct {
	WorkDir  string   `json:"work_dir"            jsonschema:"absolute path of a directory inside the repository"`
	Refs     []string `json:"refs"                jsonschema:"commits to apply, in order"`
	NoCommit bool     `json:"no_commit,omitempty" jsonschema:"stage the changes without committing"`
}

// CherryPickOutput reports the outcome.
type CherryPickOutput struct {
	Applied   bool       `json:"applied"             jsonschema:"true when every commit applied"`
	Conflicts []Conflict `json:"conflicts,omitempty" jsonschema:"conflicted paths when the cherry-pick stopped"`
}

func handleCherryPick(d deps) mcp.ToolHandlerFor[CherryPickInput, CherryPickOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CherryPickInput) (*mcp.CallToolResult, CherryPickOutput, error) {
		result, err := d.ops.CherryPick(ctx, d.newContext(in.WorkDir), git.CherryPickOptions{
			Refs:     in.Refs,
			NoCommit: in.NoCommit,
		})
		if err != nil {
			return nil, CherryPickOutput{}, toolError("git_cherry_pick", err)
		}
		out := CherryPickOutput{
			Applied:   result.Applied,
			Conflicts: toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Cherry-pick abort tool ---

// CherryPickAbortInput identifies the repository.
type CherryPickAbortInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// CherryPickAbortOutput confirms the abort.
type CherryPickAbortOutput struct {
	Aborted bool `json:"aborted" jsonschema:"true when the cherry-pick was aborted"`
}

func handleCherryPickAbort(d deps) mcp.ToolHandlerFor[CherryPickAbortInput, CherryPickAbortOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CherryPickAbortInput) (*mcp.CallToolResult, CherryPickAbortOutput, error) {
		if err := d.ops.AbortCherryPick(ctx, d.newContext(in.WorkDir)); err != nil {
			return nil, CherryPickAbortOutput{}, toolError("git_cherry_pick_abort", err)
		}
		return nil, CherryPickAbortOutput{Aborted: true}, nil
	}
}

// --- Rebase tool ---

// RebaseInput names the upstream to rebase onto.
type RebaseInput struct {
	WorkDir   string `json:"work_dir"            jsonschema:"absolute path of a directory inside the repository"`
	Upstream  string `json:"upstream"            jsonschema:"branch or revision to rebase onto"`
	Onto      string `json:"onto,omitempty"      jsonschema:"replay onto this revision instead of upstream"`
	Autostash bool   `json:"autostash,omitempty" jsonschema:"stash local changes before rebasing and restore them after"`
}

// RebaseOutput reports the outcome; on conflicts the rebase stays in
// progress for git_rebase_continue or git_rebase_abort.
type RebaseOutput struct {
	Completed bool       `json:"completed"           jsonschema:"true when the rebase finished"`
	Conflicts []Conflict `json:"conflicts,omitempty" jsonschema:"conflicted paths when the rebase stopped"`
}

func handleRebase(d deps) mcp.ToolHandlerFor[RebaseInput, RebaseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RebaseInput) (*mcp.CallToolResult, RebaseOutput, error) {
		result, err := d.ops.Rebase(ctx, d.newContext(in.WorkDir), git.RebaseOptions{
			Upstream:  in.Upstream,
			Onto:      in.Onto,
			Autostash: in.Autostash,
		})
		if err != nil {
			return nil, RebaseOutput{}, toolError("git_rebase", err)
		}
		out := RebaseOutput{
			Completed: result.Completed,
			Conflicts: toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Rebase continue tool ---

// RebaseContinueInput identifies the repository.
type RebaseContinueInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

func handleRebaseContinue(d deps) mcp.ToolHandlerFor[RebaseContinueInput, RebaseOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RebaseContinueInput) (*mcp.CallToolResult, RebaseOutput, error) {
		result, err := d.ops.ContinueRebase(ctx, d.newContext(in.WorkDir))
		if err != nil {
			return nil, RebaseOutput{}, toolError("git_rebase_continue", err)
		}
		out := RebaseOutput{
			Completed: result.Completed,
			Conflicts: toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Rebase abort tool ---

// RebaseAbortInput identifies the repository.
type RebaseAbortInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// RebaseAbortOutput confirms the abort.
type RebaseAbortOutput struct {
	Aborted bool `json:"aborted" jsonschema:"true when the rebase was aborted"`
}

func handleRebaseAbort(d deps) mcp.ToolHandlerFor[RebaseAbortInput, RebaseAbortOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RebaseAbortInput) (*mcp.CallToolResult, RebaseAbortOutput, error) {
		if err := d.ops.AbortRebase(ctx, d.newContext(in.WorkDir)); err != nil {
			return nil, RebaseAbortOutput{}, toolError("git_rebase_abort", err)
		}
		return nil, RebaseAbortOutput{Aborted: true}, nil
	}
}
