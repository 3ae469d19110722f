package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Worktree list tool ---

// WorktreeListInput identifies the repository.
type WorktreeListInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// Worktree is one checked out working tree.
type Worktree struct {
	Path     string `json:"path"             jsonschema:"worktree directory"`
	SHA      string `json:"sha,omitempty"    jsonschema:"checked out commit"`
	Branch   string `json:"branch,omitempty" jsonschema:"checked out branch, empty when detached or bare"`
	Detached bool   `json:"detached"         jsonschema:"true when HEAD is detached"`
	Bare     bool   `json:"bare"             jsonschema:"true for the bare repository entry"`
	Locked   bool   `json:"locked"           jsonschema:"true when the worktree is locked"`
	Prunable bool   `json:"prunable"         jsonschema:"true when the directory is gone and the entry can be pruned"`
}

// WorktreeListOutput lists the worktrees, main worktree first.
type WorktreeListOutput struct {
	Worktrees []Worktree `json:"worktrees" jsonschema:"worktrees, main worktree first"`
}

func handleWorktreeList(d deps) mcp.ToolHandlerFor[WorktreeListInput, WorktreeListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorktreeListInput) (*mcp.CallToolResult, WorktreeListOutput, error) {
		result, err := d.ops.ListWorktrees(ctx, d.newContext(in.WorkDir))
		if err != nil {
			return nil, WorktreeListOutput{}, toolError("git_worktree_list", err)
		}

		worktrees := make([]Worktree, 0, len(result.Worktrees))
		for _, w := range result.Worktrees {
			worktrees = append(worktrees, Worktree{
				Path:     w.Path,
				SHA:      w.SHA,
				Branch:   w.Branch,
				Detached: w.Detached,
				Bare:     w.Bare,
				Locked:   w.Locked,
				Prunable: w.Prunable,
			})
		}
		return nil, WorktreeListOutput{Worktrees: worktrees}, nil
	}
}

// --- Worktree add tool ---

// WorktreeAddInput describes the worktree to create.
type WorktreeAddInput struct {
	WorkDir string `json:"work_dir"         jsonschema:"absolute path of a directory inside the repository"`
	Path    string `json:"path"             jsonschema:"directory for the new worktree"`
	Ref     string `json:"ref,omitempty"    jsonschema:"revision to check out (default HEAD)"`
	Branch  string `json:"branch,omitempty" jsonschema:"create and check out this new branch in the worktree"`
}

// WorktreeAddOutput confirms the creation.
type WorktreeAddOutput struct {
	Path string `json:"path" jsonschema:"the created worktree directory"`
}

func handleWorktreeAdd(d deps) mcp.ToolHandlerFor[WorktreeAddInput, WorktreeAddOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorktreeAddInput) (*mcp.CallToolResult, WorktreeAddOutput, error) {
		err := d.ops.AddWorktree(ctx, d.newContext(in.WorkDir), git.WorktreeAddOptions{
			Path:   in.Path,
			Ref:    in.Ref,
			Branch: in.Branch,
		})
		if err != nil {
			return nil, WorktreeAddOutput{}, toolError("git_worktree_add", err)
		}
		return nil, WorktreeAddOutput{Path: in.Path}, nil
	}
}

// --- Worktree remove tool ---

// WorktreeRemoveInput names the worktree to remove.
type WorktreeRemoveInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Path    string `json:"path"            jsonschema:"worktree directory to remove"`
	Force   bool   `json:"force,omitempty" jsonschema:"remove even with local modifications"`
}

// WorktreeRemoveOutput confirms the removal.
type WorktreeRemoveOutput struct {
	Path    string `json:"path"    jsonschema:"the removed worktree directory"`
	Removed bool   `json:"removed" jsonschema:"true when the worktree was removed"`
}

func handleWorktreeRemove(d deps) mcp.ToolHandlerFor[WorktreeRemoveInput, WorktreeRemoveOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorktreeRemoveInput) (*mcp.CallToolResult, WorktreeRemoveOutput, error) {
		err := d.ops.RemoveWorktree(ctx, d.newContext(in.WorkDir), git.WorktreeRemoveOptions{
			Path:  in.Path,
			Force: in.Force,
		})
		if err != nil {
			return nil, WorktreeRemoveOutput{}, toolError("git_worktree_remove", err)
		}
		return nil, WorktreeRemoveOutput{Path: in.Path, Removed: true}, nil
	}
}

// --- Worktree prune tool ---

// WorktreePruneInput identifies the repository.
type WorktreePruneInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// WorktreePruneOutput confirms the prune.
type WorktreePruneOutput struct {
	Pruned bool `json:"pruned" jsonschema:"true when stale worktree data was pruned"`
}

func handleWorktreePrune(d deps) mcp.ToolHandlerFor[WorktreePruneInput, WorktreePruneOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorktreePruneInput) (*mcp.CallToolResult, WorktreePruneOutput, error) {
		if err := d.ops.PruneWorktrees(ctx, d.newContext(in.WorkDir)); err != nil {
			return nil, WorktreePruneOutput{}, toolError("git_worktree_prune", err)
		}
		return nil, WorktreePruneOutput{Pruned: true}, nil
	}
}

// --- Init tool ---

// InitInput describes the repository to create.
type InitInput struct {
	WorkDir       string `json:"work_dir"                 jsonschema:"absolute path of the directory to initialize"`
	Bare          bool   `json:"bare,omitempty"           jsonschema:"create a bare repository"`
	InitialBranch string `json:"initial_branch,omitempty" jsonschema:"name for the initial branch"`
}

// InitOutput reports the created repository.
type InitOutput struct {
	Path string `json:"path" jsonschema:"directory the repository was created in"`
	Bare bool   `json:"bare" jsonschema:"true when the repository is bare"`
}

func handleInit(d deps) mcp.ToolHandlerFor[InitInput, InitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in InitInput) (*mcp.CallToolResult, InitOutput, error) {
		result, err := d.ops.Init(ctx, d.newContext(in.WorkDir), git.InitOptions{
			Bare:          in.Bare,
			InitialBranch: in.InitialBranch,
		})
		if err != nil {
			return nil, InitOutput{}, toolError("git_init", err)
		}
		return nil, InitOutput{Path: result.Path, Bare: result.Bare}, nil
	}
}
