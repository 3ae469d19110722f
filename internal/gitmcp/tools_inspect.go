package gitmcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Status tool ---

// StatusInput identifies the repository to inspect.
type StatusInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// RenamedFile records a staged rename.
type RenamedFile struct {
	Path     string `json:"path"      jsonschema:"new path"`
	OrigPath string `json:"orig_path" jsonschema:"previous path"`
}

// StatusOutput reports branch state and every changed path, classified.
type StatusOutput struct {
	Branch           string        `json:"branch"                      jsonschema:"current branch, empty when detached"`
	Detached         bool          `json:"detached"                    jsonschema:"true when HEAD is detached"`
	Commit           string        `json:"commit,omitempty"            jsonschema:"HEAD commit SHA, empty before the first commit"`
	Upstream         string        `json:"upstream,omitempty"          jsonschema:"upstream branch"`
	Ahead            int           `json:"ahead"                       jsonschema:"commits ahead of upstream"`
	Behind           int           `json:"behind"                      jsonschema:"commits behind upstream"`
	Clean            bool          `json:"clean"                       jsonschema:"true when nothing is staged, modified, untracked, or conflicted"`
	StagedAdded      []string      `json:"staged_added,omitempty"      jsonschema:"paths added to the index"`
	StagedModified   []string      `json:"staged_modified,omitempty"   jsonschema:"paths modified in the index"`
	StagedDeleted    []string      `json:"staged_deleted,omitempty"    jsonschema:"paths deleted in the index"`
	UnstagedModified []string      `json:"unstaged_modified,omitempty" jsonschema:"tracked paths modified in the working tree"`
	UnstagedDeleted  []string      `json:"unstaged_deleted,omitempty"  jsonschema:"tracked paths deleted in the working tree"`
	Renamed          []RenamedFile `json:"renamed,omitempty"           jsonschema:"staged renames"`
	Untracked        []string      `json:"untracked,omitempty"         jsonschema:"untracked paths"`
	Conflicted       []string      `json:"conflicted,omitempty"        jsonschema:"paths with unresolved merge conflicts"`
}

func handleStatus(d deps) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		result, err := d.ops.Status(ctx, d.newContext(in.WorkDir))
		if err != nil {
			return nil, StatusOutput{}, toolError("git_status", err)
		}

		renamed := make([]RenamedFile, 0, len(result.Renamed))
		for _, r := range result.Renamed {
			renamed = append(renamed, RenamedFile{Path: r.Path, OrigPath: r.OrigPath})
		}

		out := StatusOutput{
			Branch:           result.Branch,
			Detached:         result.Detached,
			Commit:           result.Commit,
			Upstream:         result.Upstream,
			Ahead:            result.Ahead,
			Behind:           result.Behind,
			Clean:            result.Clean(),
			StagedAdded:      result.StagedAdded,
			StagedModified:   result.StagedModified,
			StagedDeleted:    result.StagedDeleted,
			UnstagedModified: result.UnstagedModified,
			UnstagedDeleted:  result.UnstagedDeleted,
			Renamed:          renamed,
			Untracked:        result.Untracked,
			Conflicted:       result.Conflicted,
		}
		return nil, out, nil
	}
}

// --- Log tool ---

// LogInput selects and filters the history to list.
type LogInput struct {
	WorkDir     string   `json:"work_dir"               jsonschema:"absolute path of a directory inside the repository"`
	Ref         string   `json:"ref,omitempty"          jsonschema:"branch, tag, or revision to start from (default HEAD)"`
	MaxCount    int      `json:"max_count,omitempty"    jsonschema:"maximum commits to return"`
	Skip        int      `json:"skip,omitempty"         jsonschema:"commits to skip before returning"`
	Author      string   `json:"author,omitempty"       jsonschema:"only commits whose author matches this pattern"`
	Since       string   `json:"since,omitempty"        jsonschema:"only commits after this date"`
	Until       string   `json:"until,omitempty"        jsonschema:"only commits before this date"`
	Grep        string   `json:"grep,omitempty"         jsonschema:"only commits whose message matches this pattern"`
	FirstParent bool     `json:"first_parent,omitempty" jsonschema:"follow only the first parent of merges"`
	All         bool     `json:"all,omitempty"          jsonschema:"include all refs, not just the starting one"`
	Paths       []string `json:"paths,omitempty"        jsonschema:"only commits touching these paths"`
}

// LogOutput lists the matching commits, newest first.
type LogOutput struct {
	Commits []Commit `json:"commits" jsonschema:"matching commits, newest first"`
}

func handleLog(d deps) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in LogInput) (*mcp.CallToolResult, LogOutput, error) {
		result, err := d.ops.Log(ctx, d.newContext(in.WorkDir), git.LogOptions{
			Ref:         in.Ref,
			MaxCount:    in.MaxCount,
			Skip:        in.Skip,
			Author:      in.Author,
			Since:       in.Since,
			Until:       in.Until,
			Grep:        in.Grep,
			FirstParent: in.FirstParent,
			All:         in.All,
			Paths:       in.Paths,
		})
		if err != nil {
			return nil, LogOutput{}, toolError("git_log", err)
		}
		return nil, LogOutput{Commits: toCommits(result.Commits)}, nil
	}
}

// --- Show tool ---

// ShowInput names the commit to display.
type ShowInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Ref     string `json:"ref,omitempty"   jsonschema:"commit to show (default HEAD)"`
	Patch   bool   `json:"patch,omitempty" jsonschema:"include the full patch"`
	Stat    bool   `json:"stat,omitempty"  jsonschema:"include a diffstat instead of the patch"`
}

// ShowOutput carries the commit and its optional patch text.
type ShowOutput struct {
	Commit Commit `json:"commit"          jsonschema:"the commit metadata"`
	Patch  string `json:"patch,omitempty" jsonschema:"patch or diffstat text when requested"`
}

func handleShow(d deps) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		result, err := d.ops.Show(ctx, d.newContext(in.WorkDir), git.ShowOptions{
			Ref:   in.Ref,
			Patch: in.Patch,
			Stat:  in.Stat,
		})
		if err != nil {
			return nil, ShowOutput{}, toolError("git_show", err)
		}
		return nil, ShowOutput{Commit: toCommit(result.Commit), Patch: result.Patch}, nil
	}
}

// --- Blame tool ---

// BlameInput names the file to annotate.
type BlameInput struct {
	WorkDir   string `json:"work_dir"             jsonschema:"absolute path of a directory inside the repository"`
	Path      string `json:"path"                 jsonschema:"file to annotate, relative to the repository root"`
	Ref       string `json:"ref,omitempty"        jsonschema:"annotate as of this revision (default HEAD)"`
	StartLine int    `json:"start_line,omitempty" jsonschema:"first line of the range to annotate (1-based)"`
	EndLine   int    `json:"end_line,omitempty"   jsonschema:"last line of the range to annotate"`
}

// BlameLine annotates one line with the commit that last changed it.
type BlameLine struct {
	SHA        string `json:"sha"         jsonschema:"commit that last changed the line"`
	Author     string `json:"author"      jsonschema:"author name"`
	AuthorMail string `json:"author_mail" jsonschema:"author email"`
	AuthorTime string `json:"author_time" jsonschema:"author time, RFC 3339"`
	Summary    string `json:"summary"     jsonschema:"subject of the commit"`
	Line       int    `json:"line"        jsonschema:"line number in the current file"`
	Content    string `json:"content"     jsonschema:"line content"`
}

// BlameOutput lists the annotated lines in file order.
type BlameOutput struct {
	Path  string      `json:"path"  jsonschema:"the annotated file"`
	Lines []BlameLine `json:"lines" jsonschema:"annotated lines in file order"`
}

func handleBlame(d deps) mcp.ToolHandlerFor[BlameInput, BlameOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BlameInput) (*mcp.CallToolResult, BlameOutput, error) {
		result, err := d.ops.Blame(ctx, d.newContext(in.WorkDir), git.BlameOptions{
			Path:      in.Path,
			Ref:       in.Ref,
			StartLine: in.StartLine,
			EndLine:   in.EndLine,
		})
		if err != nil {
			return nil, BlameOutput{}, toolError("git_blame", err)
		}

		lines := make([]BlameLine, 0, len(result.Lines))
		for _, l := range result.Lines {
			lines = append(lines, BlameLine{
				SHA:        l.SHA,
				Author:     l.Author,
				AuthorMail: l.AuthorMail,
				AuthorTime: l.AuthorTime.UTC().Format(time.RFC3339),
				Summary:    l.Summary,
				Line:       l.FinalLine,
				Content:    l.Content,
			})
		}
		return nil, BlameOutput{Path: result.Path, Lines: lines}, nil
	}
}

// --- Reflog tool ---

// ReflogInput selects the ref whose log to list.
type ReflogInput struct {
	WorkDir  string `json:"work_dir"            jsonschema:"absolute path of a directory inside the repository"`
	Ref      string `json:"ref,omitempty"       jsonschema:"ref whose log to list (default HEAD)"`
	MaxCount int    `json:"max_count,omitempty" jsonschema:"maximum entries to return"`
}

// ReflogEntry is one movement of the ref.
type ReflogEntry struct {
	Index    int    `json:"index"    jsonschema:"position parsed from the selector, 0 is the most recent"`
	Selector string `json:"selector" jsonschema:"reflog selector such as HEAD@{0}"`
	SHA      string `json:"sha"      jsonschema:"commit the ref pointed at after the action"`
	Short    string `json:"short"    jsonschema:"abbreviated SHA"`
	Action   string `json:"action"   jsonschema:"action that moved the ref, such as commit or checkout"`
	Subject  string `json:"subject"  jsonschema:"description recorded with the action"`
	Date     string `json:"date"     jsonschema:"when the ref moved, RFC 3339"`
}

// ReflogOutput lists the entries, most recent first.
type ReflogOutput struct {
	Ref     string        `json:"ref"     jsonschema:"the ref that was listed"`
	Entries []ReflogEntry `json:"entries" jsonschema:"entries, most recent first"`
}

func handleReflog(d deps) mcp.ToolHandlerFor[ReflogInput, ReflogOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ReflogInput) (*mcp.CallToolResult, ReflogOutput, error) {
		result, err := d.ops.Reflog(ctx, d.newContext(in.WorkDir), git.ReflogOptions{
			Ref:      in.Ref,
			MaxCount: in.MaxCount,
		})
		if err != nil {
			return nil, ReflogOutput{}, toolError("git_reflog", err)
		}

		entries := make([]ReflogEntry, 0, len(result.Entries))
		for _, e := range result.Entries {
			entries = append(entries, ReflogEntry{
				Index:    e.Index,
				Selector: e.Selector,
				SHA:      e.SHA,
				Short:    e.Short,
				Action:   e.Action,
				Subject:  e.Subject,
				Date:     e.Date.UTC().Format(time.RFC3339),
			})
		}
		return nil, ReflogOutput{Ref: result.Ref, Entries: entries}, nil
	}
}
