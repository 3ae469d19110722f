package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Stage tool ---

// StageInput selects what to add to the index.
type StageInput struct {
	WorkDir string   `json:"work_dir"         jsonschema:"absolute path of a directory inside the repository"`
	Paths   []string `json:"paths,omitempty"  jsonschema:"paths to stage"`
	All     bool     `json:"all,omitempty"    jsonschema:"stage every change including untracked files"`
	Update  bool     `json:"update,omitempty" jsonschema:"stage changes to tracked files only"`
}

// StageOutput confirms the staging happened.
type StageOutput struct {
	Staged bool `json:"staged" jsonschema:"true when the paths were staged"`
}

func handleStage(d deps) mcp.ToolHandlerFor[StageInput, StageOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StageInput) (*mcp.CallToolResult, StageOutput, error) {
		err := d.ops.Stage(ctx, d.newContext(in.WorkDir), git.StageOptions{
			Paths:  in.Paths,
			All:    in.All,
			Update: in.Update,
		})
		if err != nil {
			return nil, StageOutput{}, toolError("git_stage", err)
		}
		return nil, StageOutput{Staged: true}, nil
	}
}

// --- Unstage tool ---

// UnstageInput selects what to remove from the index.
type UnstageInput struct {
	WorkDir string   `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Paths   []string `json:"paths,omitempty" jsonschema:"paths to unstage (default: everything staged)"`
}

// UnstageOutput confirms the index was restored.
type UnstageOutput struct {
	Unstaged bool `json:"unstaged" jsonschema:"true when the paths were unstaged"`
}

func handleUnstage(d deps) mcp.ToolHandlerFor[UnstageInput, UnstageOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UnstageInput) (*mcp.CallToolResult, UnstageOutput, error) {
		err := d.ops.Unstage(ctx, d.newContext(in.WorkDir), git.UnstageOptions{Paths: in.Paths})
		if err != nil {
			return nil, UnstageOutput{}, toolError("git_unstage", err)
		}
		return nil, UnstageOutput{Unstaged: true}, nil
	}
}

// --- Commit tool ---

// CommitInput describes the commit to record.
type CommitInput struct {
	WorkDir    string `json:"work_dir"              jsonschema:"absolute path of a directory inside the repository"`
	Message    string `json:"message"               jsonschema:"commit message; may span multiple lines"`
	All        bool   `json:"all,omitempty"         jsonschema:"also stage modified and deleted tracked files first"`
	Amend      bool   `json:"amend,omitempty"       jsonschema:"replace the previous commit instead of adding a new one"`
	AllowEmpty bool   `json:"allow_empty,omitempty" jsonschema:"permit a commit with no changes"`
	SignOff    bool   `json:"signoff,omitempty"     jsonschema:"append a Signed-off-by trailer"`
	NoVerify   bool   `json:"no_verify,omitempty"   jsonschema:"skip pre-commit and commit-msg hooks"`
	Author     string `json:"author,omitempty"      jsonschema:"author override in 'Name <email>' form"`
}

// CommitOutput reports the recorded commit.
type CommitOutput struct {
	SHA      string   `json:"sha"              jsonschema:"SHA of the new commit"`
	Branch   string   `json:"branch,omitempty" jsonschema:"branch the commit landed on"`
	Detached bool     `json:"detached"         jsonschema:"true when committed on a detached HEAD"`
	Subject  string   `json:"subject"          jsonschema:"commit subject line"`
	Stat     DiffStat `json:"stat"             jsonschema:"files and lines changed by the commit"`
}

func handleCommit(d deps) mcp.ToolHandlerFor[CommitInput, CommitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CommitInput) (*mcp.CallToolResult, CommitOutput, error) {
		result, err := d.ops.Commit(ctx, d.newContext(in.WorkDir), git.CommitOptions{
			Message:    in.Message,
			All:        in.All,
			Amend:      in.Amend,
			AllowEmpty: in.AllowEmpty,
			SignOff:    in.SignOff,
			NoVerify:   in.NoVerify,
			Author:     in.Author,
		})
		if err != nil {
			return nil, CommitOutput{}, toolError("git_commit", err)
		}
		out := CommitOutput{
			SHA:      result.SHA,
			Branch:   result.Branch,
			Detached: result.Detached,
			Subject:  result.Subject,
			Stat:     toDiffStat(result.Stat),
		}
		return nil, out, nil
	}
}

// --- Diff tool ---

// DiffInput selects what to compare.
type DiffInput struct {
	WorkDir  string   `json:"work_dir"            jsonschema:"absolute path of a directory inside the repository"`
	Base     string   `json:"base,omitempty"      jsonschema:"base revision; with target, compares base..target"`
	Target   string   `json:"target,omitempty"    jsonschema:"target revision, requires base"`
	Staged   bool     `json:"staged,omitempty"    jsonschema:"compare the index against HEAD instead of the working tree"`
	NameOnly bool     `json:"name_only,omitempty" jsonschema:"return only the changed file names"`
	Stat     bool     `json:"stat,omitempty"      jsonschema:"return a diffstat instead of the patch"`
	Unified  int      `json:"unified,omitempty"   jsonschema:"context lines in the patch"`
	Paths    []string `json:"paths,omitempty"     jsonschema:"limit the diff to these paths"`
}

// DiffOutput carries the requested comparison.
type DiffOutput struct {
	Patch  string   `json:"patch,omitempty" jsonschema:"unified diff text"`
	Files  []string `json:"files,omitempty" jsonschema:"changed file names when name_only is set"`
	Stat   DiffStat `json:"stat"            jsonschema:"summary when stat is set"`
	Binary bool     `json:"binary"          jsonschema:"true when binary changes are present"`
}

func handleDiff(d deps) mcp.ToolHandlerFor[DiffInput, DiffOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DiffInput) (*mcp.CallToolResult, DiffOutput, error) {
		result, err := d.ops.Diff(ctx, d.newContext(in.WorkDir), git.DiffOptions{
			Base:     in.Base,
			Target:   in.Target,
			Staged:   in.Staged,
			NameOnly: in.NameOnly,
			Stat:     in.Stat,
			Unified:  in.Unified,
			Paths:    in.Paths,
		})
		if err != nil {
			return nil, DiffOutput{}, toolError("git_diff", err)
		}
		out := DiffOutput{
			Patch:  result.Patch,
			Files:  result.Files,
			Stat:   toDiffStat(result.Stat),
			Binary: result.Binary,
		}
		return nil, out, nil
	}
}

// --- Reset tool ---

// ResetInput names the revision and mode to reset to.
type ResetInput struct {
	WorkDir string `json:"work_dir"       jsonschema:"absolute path of a directory inside the repository"`
	Mode    string `json:"mode,omitempty" jsonschema:"soft, mixed, or hard (default mixed)"`
	Ref     string `json:"ref,omitempty"  jsonschema:"revision to reset to (default HEAD)"`
}

// ResetOutput echoes the applied reset.
type ResetOutput struct {
	Mode string `json:"mode" jsonschema:"mode that was applied"`
	Ref  string `json:"ref"  jsonschema:"revision HEAD now points at"`
}

func handleReset(d deps) mcp.ToolHandlerFor[ResetInput, ResetOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ResetInput) (*mcp.CallToolResult, ResetOutput, error) {
		err := d.ops.Reset(ctx, d.newContext(in.WorkDir), git.ResetOptions{
			Mode: in.Mode,
			Ref:  in.Ref,
		})
		if err != nil {
			return nil, ResetOutput{}, toolError("git_reset", err)
		}
		mode := in.Mode
		if mode == "" {
			mode = git.ResetMixed
		}
		ref := in.Ref
		if ref == "" {
			ref = "HEAD"
		}
		return nil, ResetOutput{Mode: mode, Ref: ref}, nil
	}
}

// --- Clean tool ---

// CleanInput controls untracked-file deletion.
type CleanInput struct {
	WorkDir     string `json:"work_dir"              jsonschema:"absolute path of a directory inside the repository"`
	Force       bool   `json:"force,omitempty"       jsonschema:"actually delete; required unless dry_run is set"`
	DryRun      bool   `json:"dry_run,omitempty"     jsonschema:"list what would be removed without deleting"`
	Directories bool   `json:"directories,omitempty" jsonschema:"also remove untracked directories"`
	IgnoredToo  bool   `json:"ignored_too,omitempty" jsonschema:"also remove ignored files"`
}

// CleanOutput lists the removed (or would-be removed) paths.
type CleanOutput struct {
	DryRun  bool     `json:"dry_run"           jsonschema:"true when nothing was actually deleted"`
	Removed []string `json:"removed,omitempty" jsonschema:"paths removed, or that would be removed under dry_run"`
}

func handleClean(d deps) mcp.ToolHandlerFor[CleanInput, CleanOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CleanInput) (*mcp.CallToolResult, CleanOutput, error) {
		result, err := d.ops.Clean(ctx, d.newContext(in.WorkDir), git.CleanOptions{
			Force:       in.Force,
			DryRun:      in.DryRun,
			Directories: in.Directories,
			IgnoredToo:  in.IgnoredToo,
		})
		if err != nil {
			return nil, CleanOutput{}, toolError("git_clean", err)
		}
		return nil, CleanOutput{DryRun: result.DryRun, Removed: result.Removed}, nil
	}
}
