package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Remote list tool ---

// RemoteListInput identifies the repository.
type RemoteListInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
}

// Remote is one configured remote.
type Remote struct {
	Name     string `json:"name"      jsonschema:"remote name"`
	FetchURL string `json:"fetch_url" jsonschema:"URL used for fetches"`
	PushURL  string `json:"push_url"  jsonschema:"URL used for pushes"`
}

// RemoteListOutput lists the remotes.
type RemoteListOutput struct {
	Remotes []Remote `json:"remotes" jsonschema:"configured remotes"`
}

func handleRemoteList(d deps) mcp.ToolHandlerFor[RemoteListInput, RemoteListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RemoteListInput) (*mcp.CallToolResult, RemoteListOutput, error) {
		result, err := d.ops.ListRemotes(ctx, d.newContext(in.WorkDir))
		if err != nil {
			return nil, RemoteListOutput{}, toolError("git_remote_list", err)
		}

		remotes := make([]Remote, 0, len(result.Remotes))
		for _, r := range result.Remotes {
			remotes = append(remotes, Remote{
				Name:     r.Name,
				FetchURL: r.FetchURL,
				PushURL:  r.PushURL,
			})
		}
		return nil, RemoteListOutput{Remotes: remotes}, nil
	}
}

// --- Remote add tool ---

// RemoteAddInput names the remote to add.
type RemoteAddInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
	Name    string `json:"name"     jsonschema:"name for the new remote"`
	URL     string `json:"url"      jsonschema:"remote URL"`
}

// RemoteAddOutput confirms the addition.
type RemoteAddOutput struct {
	Name string `json:"name" jsonschema:"the added remote"`
	URL  string `json:"url"  jsonschema:"its URL"`
}

func handleRemoteAdd(d deps) mcp.ToolHandlerFor[RemoteAddInput, RemoteAddOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RemoteAddInput) (*mcp.CallToolResult, RemoteAddOutput, error) {
		err := d.ops.AddRemote(ctx, d.newContext(in.WorkDir), git.RemoteAddOptions{
			Name: in.Name,
			URL:  in.URL,
		})
		if err != nil {
			return nil, RemoteAddOutput{}, toolError("git_remote_add", err)
		}
		return nil, RemoteAddOutput{Name: in.Name, URL: in.URL}, nil
	}
}

// --- Remote remove tool ---

// RemoteRemoveInput names the remote to remove.
type RemoteRemoveInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
	Name    string `json:"name"     jsonschema:"remote to remove"`
}

// RemoteRemoveOutput confirms the removal.
type RemoteRemoveOutput struct {
	Name    string `json:"name"    jsonschema:"the removed remote"`
	Removed bool   `json:"removed" jsonschema:"true when the remote was removed"`
}

func handleRemoteRemove(d deps) mcp.ToolHandlerFor[RemoteRemoveInput, RemoteRemoveOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RemoteRemoveInput) (*mcp.CallToolResult, RemoteRemoveOutput, error) {
		if err := d.ops.RemoveRemote(ctx, d.newContext(in.WorkDir), git.RemoteRemoveOptions{Name: in.Name}); err != nil {
			return nil, RemoteRemoveOutput{}, toolError("git_remote_remove", err)
		}
		return nil, RemoteRemoveOutput{Name: in.Name, Removed: true}, nil
	}
}

// --- Fetch tool ---

// FetchInput selects what to fetch.
type FetchInput struct {
	WorkDir string `json:"work_dir"         jsonschema:"absolute path of a directory inside the repository"`
	Remote  string `json:"remote,omitempty" jsonschema:"remote to fetch from (default origin behavior)"`
	All     bool   `json:"all,omitempty"    jsonschema:"fetch from every remote"`
	Prune   bool   `json:"prune,omitempty"  jsonschema:"drop remote-tracking refs that no longer exist upstream"`
	Tags    bool   `json:"tags,omitempty"   jsonschema:"also fetch all tags"`
}

// FetchOutput confirms the fetch.
type FetchOutput struct {
	Fetched bool `json:"fetched" jsonschema:"true when the fetch completed"`
}

func handleFetch(d deps) mcp.ToolHandlerFor[FetchInput, FetchOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
		err := d.ops.Fetch(ctx, d.newContext(in.WorkDir), git.FetchOptions{
			Remote: in.Remote,
			All:    in.All,
			Prune:  in.Prune,
			Tags:   in.Tags,
		})
		if err != nil {
			return nil, FetchOutput{}, toolError("git_fetch", err)
		}
		return nil, FetchOutput{Fetched: true}, nil
	}
}

// --- Pull tool ---

// PullInput selects where to pull from and how to integrate.
type PullInput struct {
	WorkDir string `json:"work_dir"          jsonschema:"absolute path of a directory inside the repository"`
	Remote  string `json:"remote,omitempty"  jsonschema:"remote to pull from"`
	Ref     string `json:"ref,omitempty"     jsonschema:"remote branch to pull, requires remote"`
	Rebase  bool   `json:"rebase,omitempty"  jsonschema:"rebase onto the fetched branch instead of merging"`
	FFOnly  bool   `json:"ff_only,omitempty" jsonschema:"fail unless the integration is a fast-forward"`
}

// PullOutput reports the outcome.
type PullOutput struct {
	Updated     bool       `json:"updated"             jsonschema:"false when already up to date"`
	FastForward bool       `json:"fast_forward"        jsonschema:"true when the integration was a fast-forward"`
	Conflicts   []Conflict `json:"conflicts,omitempty" jsonschema:"conflicted paths when the integration stopped"`
}

func handlePull(d deps) mcp.ToolHandlerFor[PullInput, PullOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PullInput) (*mcp.CallToolResult, PullOutput, error) {
		result, err := d.ops.Pull(ctx, d.newContext(in.WorkDir), git.PullOptions{
			Remote: in.Remote,
			Ref:    in.Ref,
			Rebase: in.Rebase,
			FFOnly: in.FFOnly,
		})
		if err != nil {
			return nil, PullOutput{}, toolError("git_pull", err)
		}
		out := PullOutput{
			Updated:     result.Updated,
			FastForward: result.FastForward,
			Conflicts:   toConflicts(result.Conflicts),
		}
		return nil, out, nil
	}
}

// --- Push tool ---

// PushInput selects what to push and how.
type PushInput struct {
	WorkDir        string `json:"work_dir"                   jsonschema:"absolute path of a directory inside the repository"`
	Remote         string `json:"remote,omitempty"           jsonschema:"remote to push to"`
	Ref            string `json:"ref,omitempty"              jsonschema:"branch or tag to push"`
	SetUpstream    bool   `json:"set_upstream,omitempty"     jsonschema:"set the upstream for the pushed branch"`
	Force          bool   `json:"force,omitempty"            jsonschema:"force the update, overwriting remote history"`
	ForceWithLease bool   `json:"force_with_lease,omitempty" jsonschema:"force only when the remote ref is where we last saw it"`
	Tags           bool   `json:"tags,omitempty"             jsonschema:"push all tags"`
	Delete         bool   `json:"delete,omitempty"           jsonschema:"delete the named ref on the remote, requires ref"`
}

// PushOutput confirms the push.
type PushOutput struct {
	Pushed bool `json:"pushed" jsonschema:"true when the push completed"`
}

func handlePush(d deps) mcp.ToolHandlerFor[PushInput, PushOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PushInput) (*mcp.CallToolResult, PushOutput, error) {
		err := d.ops.Push(ctx, d.newContext(in.WorkDir), git.PushOptions{
			Remote:         in.Remote,
			Ref:            in.Ref,
			SetUpstream:    in.SetUpstream,
			Force:          in.Force,
			ForceWithLease: in.ForceWithLease,
			Tags:           in.Tags,
			Delete:         in.Delete,
		})
		if err != nil {
			return nil, PushOutput{}, toolError("git_push", err)
		}
		return nil, PushOutput{Pushed: true}, nil
	}
}
