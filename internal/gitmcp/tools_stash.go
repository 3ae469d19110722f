package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Stash list tool ---

// StashListInput identifies the repository.
type StashListInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// StashEntry is one saved stash.
type StashEntry struct {
	Index    int    `json:"index"            jsonschema:"position in the stash list, 0 is most recent"`
	Selector string `json:"selector"         jsonschema:"selector such as stash@{0}"`
	Branch   string `json:"branch,omitempty" jsonschema:"branch the stash was taken on"`
	Message  string `json:"message"          jsonschema:"stash message"`
}

// StashListOutput lists the stashes, most recent first.
type StashListOutput struct {
	Entries []StashEntry `json:"entries" jsonschema:"stash entries, most recent first"`
}

func handleStashList(d deps) mcp.ToolHandlerFor[StashListInput, StashListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StashListInput) (*mcp.CallToolResult, StashListOutput, error) {
		result, err := d.ops.ListStashes(ctx, d.newContext(in.WorkDir))
		if err != nil {
			return nil, StashListOutput{}, toolError("git_stash_list", err)
		}

		entries := make([]StashEntry, 0, len(result.Entries))
		for _, e := range result.Entries {
			entries = append(entries, StashEntry{
				Index:    e.Index,
				Selector: e.Selector,
				Branch:   e.Branch,
				Message:  e.Message,
			})
		}
		return nil, StashListOutput{Entries: entries}, nil
	}
}

// --- Stash push tool ---

// StashPushInput controls what gets stashed.
type StashPushInput struct {
	WorkDir          string   `json:"work_dir"                    jsonschema:"absolute path of a directory inside the repository"`
	Message          string   `json:"message,omitempty"           jsonschema:"message for the stash entry"`
	IncludeUntracked bool     `json:"include_untracked,omitempty" jsonschema:"also stash untracked files"`
	KeepIndex        bool     `json:"keep_index,omitempty"        jsonschema:"leave already staged changes in the index"`
	Paths            []string `json:"paths,omitempty"             jsonschema:"stash only these paths"`
}

// StashPushOutput confirms the stash was created.
type StashPushOutput struct {
	Pushed bool `json:"pushed" jsonschema:"true when the changes were stashed"`
}

func handleStashPush(d deps) mcp.ToolHandlerFor[StashPushInput, StashPushOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StashPushInput) (*mcp.CallToolResult, StashPushOutput, error) {
		err := d.ops.StashPush(ctx, d.newContext(in.WorkDir), git.StashPushOptions{
			Message:          in.Message,
			IncludeUntracked: in.IncludeUntracked,
			KeepIndex:        in.KeepIndex,
			Paths:            in.Paths,
		})
		if err != nil {
			return nil, StashPushOutput{}, toolError("git_stash_push", err)
		}
		return nil, StashPushOutput{Pushed: true}, nil
	}
}

// --- Stash pop tool ---

// StashPopInput selects the entry to pop.
type StashPopInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Index   int    `json:"index,omitempty" jsonschema:"stash index to pop (default 0, the most recent)"`
}

// StashApplyOutput reports the outcome of applying a stash. On conflicts the
// entry is kept so nothing is lost.
type StashApplyOutput struct {
	Applied   bool       `json:"applied"             jsonschema:"true when the stash applied cleanly"`
	Conflicts []Conflict `json:"conflicts,omitempty" jsonschema:"conflicted paths when the apply stopped"`
}

func handleStashPop(d deps) mcp.ToolHandlerFor[StashPopInput, StashApplyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StashPopInput) (*mcp.CallToolResult, StashApplyOutput, error) {
		result, err := d.ops.StashPop(ctx, d.newContext(in.WorkDir), git.StashRefOptions{Index: in.Index})
		if err != nil {
			return nil, StashApplyOutput{}, toolError("git_stash_pop", err)
		}
		out := StashApplyOutput{
			Applied:   result.Applied,
			Conflicts: toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Stash apply tool ---

// StashApplyInput selects the entry to apply.
type StashApplyInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Index   int    `json:"index,omitempty" jsonschema:"stash index to apply (default 0, the most recent)"`
}

func handleStashApply(d deps) mcp.ToolHandlerFor[StashApplyInput, StashApplyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StashApplyInput) (*mcp.CallToolResult, StashApplyOutput, error) {
		result, err := d.ops.StashApply(ctx, d.newContext(in.WorkDir), git.StashRefOptions{Index: in.Index})
		if err != nil {
			return nil, StashApplyOutput{}, toolError("git_stash_apply", err)
		}
		out := StashApplyOutput{
			Applied:   result.Applied,
			Conflicts: toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Stash drop tool ---

// StashDropInput selects the entry to delete.
type StashDropInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Index   int    `json:"index,omitempty" jsonschema:"stash index to drop (default 0, the most recent)"`
}

// StashDropOutput confirms the drop.
type StashDropOutput struct {
	Dropped bool `json:"dropped" jsonschema:"true when the entry was dropped"`
}

func handleStashDrop(d deps) mcp.ToolHandlerFor[StashDropInput, StashDropOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StashDropInput) (*mcp.CallToolResult, StashDropOutput, error) {
		if err := d.ops.StashDrop(ctx, d.newContext(in.WorkDir), git.StashRefOptions{Index: in.Index}); err != nil {
			return nil, StashDropOutput{}, toolError("git_stash_drop", err)
		}
		return nil, StashDropOutput{Dropped: true}, nil
	}
}
