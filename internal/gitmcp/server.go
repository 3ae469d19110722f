// Package gitmcp exposes the git service as Model Context Protocol tools
// over any MCP transport. Handlers translate tool inputs into service calls
// and service results into tool outputs; no git parsing lives here.
package gitmcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// deps carries what every handler needs: the operation surface and the
// tenant label stamped onto each execution context.
type deps struct {
	ops    git.Operations
	tenant string
}

func (d deps) newContext(workDir string) git.ExecutionContext {
	return git.NewExecutionContext(workDir, d.tenant)
}

// NewServer creates an MCP server with every git tool registered.
func NewServer(version string, ops git.Operations, tenant string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gitwire",
		Version: version,
	}, nil)
	registerTools(server, deps{ops: ops, tenant: tenant})
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations marks tools that never change repository state.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that change state without discarding work.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// destructiveAnnotations marks tools that can discard commits or files.
func destructiveAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// networkAnnotations marks tools that talk to remotes.
func networkAnnotations(destructive bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(destructive),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds every git tool to the server.
func registerTools(server *mcp.Server, d deps) {
	// Inspection
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_status",
		Description: "Show working tree state: current branch, upstream and ahead/behind counts, staged, unstaged, untracked, and conflicted files.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_log",
		Description: "List commit history with optional ref, count, skip, author, date-range, grep, and path filters.",
		Annotations: readOnlyAnnotations(),
	}, handleLog(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_show",
		Description: "Display one commit: metadata plus an optional patch or diffstat.",
		Annotations: readOnlyAnnotations(),
	}, handleShow(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_blame",
		Description: "Annotate each line of a file with the commit, author, and time that last changed it. Supports a line range and a starting revision.",
		Annotations: readOnlyAnnotations(),
	}, handleBlame(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_reflog",
		Description: "List reference log entries for a ref (HEAD by default): where the ref pointed and which action moved it.",
		Annotations: readOnlyAnnotations(),
	}, handleReflog(d))

	// Working tree
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stage",
		Description: "Stage paths for the next commit. Use all=true for every change, update=true for tracked files only.",
		Annotations: writeAnnotations(),
	}, handleStage(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_unstage",
		Description: "Remove paths from the index without touching the working tree. Defaults to everything staged.",
		Annotations: writeAnnotations(),
	}, handleUnstage(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_commit",
		Description: "Record staged changes as a commit. Supports amend, allow-empty, signoff, no-verify, and an author override.",
		Annotations: writeAnnotations(),
	}, handleCommit(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_diff",
		Description: "Show changes as a patch, a file list, or a diffstat: working tree vs index, staged vs HEAD, or between two revisions.",
		Annotations: readOnlyAnnotations(),
	}, handleDiff(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_reset",
		Description: "Move HEAD to a revision. Mode soft keeps the index, mixed (default) resets it, hard also discards working tree changes.",
		Annotations: destructiveAnnotations(),
	}, handleReset(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_clean",
		Description: "Delete untracked files. Requires force=true or dry_run=true; dry_run lists what would be removed without deleting.",
		Annotations: destructiveAnnotations(),
	}, handleClean(d))

	// Branches
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_branch_list",
		Description: "List branches with their tip commit, upstream, and which one is checked out. all=true includes remote-tracking branches.",
		Annotations: readOnlyAnnotations(),
	}, handleBranchList(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_branch_create",
		Description: "Create a branch from an optional start point, optionally checking it out.",
		Annotations: writeAnnotations(),
	}, handleBranchCreate(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_branch_delete",
		Description: "Delete a branch. force=true deletes even when the branch is not merged.",
		Annotations: destructiveAnnotations(),
	}, handleBranchDelete(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_checkout",
		Description: "Switch the working tree to a branch, tag, or revision.",
		Annotations: writeAnnotations(),
	}, handleCheckout(d))

	// Merging
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_merge",
		Description: "Merge a ref into the current branch. On conflicts the result lists the conflicted paths and the merge stays in progress.",
		Annotations: writeAnnotations(),
	}, handleMerge(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_merge_abort",
		Description: "Abort an in-progress merge and restore the pre-merge state.",
		Annotations: writeAnnotations(),
	}, handleMergeAbort(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_cherry_pick",
		Description: "Apply existing commits onto the current branch. On conflicts the result lists the conflicted paths.",
		Annotations: writeAnnotations(),
	}, handleCherryPick(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_cherry_pick_abort",
		Description: "Abort an in-progress cherry-pick and restore the previous state.",
		Annotations: writeAnnotations(),
	}, handleCherryPickAbort(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_rebase",
		Description: "Rebase the current branch onto an upstream. On conflicts the result lists the conflicted paths and the rebase stays in progress.",
		Annotations: writeAnnotations(),
	}, handleRebase(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_rebase_continue",
		Description: "Continue an in-progress rebase after resolving conflicts.",
		Annotations: writeAnnotations(),
	}, handleRebaseContinue(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_rebase_abort",
		Description: "Abort an in-progress rebase and restore the pre-rebase state.",
		Annotations: writeAnnotations(),
	}, handleRebaseAbort(d))

	// Stashes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stash_list",
		Description: "List stash entries with their selector, branch, and message.",
		Annotations: readOnlyAnnotations(),
	}, handleStashList(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stash_push",
		Description: "Save working tree changes to a new stash entry, optionally including untracked files or limiting to specific paths.",
		Annotations: writeAnnotations(),
	}, handleStashPush(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stash_pop",
		Description: "Apply a stash entry and drop it on success. On conflicts the entry is kept and the result lists the conflicted paths.",
		Annotations: writeAnnotations(),
	}, handleStashPop(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stash_apply",
		Description: "Apply a stash entry while keeping it in the stash list.",
		Annotations: writeAnnotations(),
	}, handleStashApply(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_stash_drop",
		Description: "Delete a stash entry without applying it.",
		Annotations: destructiveAnnotations(),
	}, handleStashDrop(d))

	// Tags
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_tag_list",
		Description: "List tags, optionally filtered by a glob pattern.",
		Annotations: readOnlyAnnotations(),
	}, handleTagList(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_tag_create",
		Description: "Create a lightweight tag, or an annotated tag when a message is given, at an optional revision.",
		Annotations: writeAnnotations(),
	}, handleTagCreate(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_tag_delete",
		Description: "Delete a local tag.",
		Annotations: destructiveAnnotations(),
	}, handleTagDelete(d))

	// Remotes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_remote_list",
		Description: "List configured remotes with their fetch and push URLs.",
		Annotations: readOnlyAnnotations(),
	}, handleRemoteList(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_remote_add",
		Description: "Add a named remote.",
		Annotations: writeAnnotations(),
	}, handleRemoteAdd(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_remote_remove",
		Description: "Remove a remote and its tracking references.",
		Annotations: destructiveAnnotations(),
	}, handleRemoteRemove(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_fetch",
		Description: "Download objects and refs from a remote (or all remotes) without changing the working tree.",
		Annotations: networkAnnotations(false),
	}, handleFetch(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_pull",
		Description: "Fetch and integrate remote changes, by merge or rebase. On conflicts the result lists the conflicted paths.",
		Annotations: networkAnnotations(false),
	}, handlePull(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_push",
		Description: "Upload local commits to a remote. Supports set-upstream, tags, delete, and forced updates.",
		Annotations: networkAnnotations(true),
	}, handlePush(d))

	// Worktrees and initialization
	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_worktree_list",
		Description: "List linked worktrees with their checked out branch or commit.",
		Annotations: readOnlyAnnotations(),
	}, handleWorktreeList(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_worktree_add",
		Description: "Create a linked worktree at a path, optionally on a new branch or at a given revision.",
		Annotations: writeAnnotations(),
	}, handleWorktreeAdd(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_worktree_remove",
		Description: "Remove a linked worktree. force=true removes it even with local changes.",
		Annotations: destructiveAnnotations(),
	}, handleWorktreeRemove(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_worktree_prune",
		Description: "Remove stale administrative data for worktrees whose directories are gone.",
		Annotations: writeAnnotations(),
	}, handleWorktreePrune(d))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "git_init",
		Description: "Create a new repository in the working directory, optionally bare or with a named initial branch.",
		Annotations: writeAnnotations(),
	}, handleInit(d))
}
