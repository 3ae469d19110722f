package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Tag list tool ---

// TagListInput optionally filters the tags.
type TagListInput struct {
	WorkDir string `json:"work_dir"          jsonschema:"absolute path of a directory inside the repository"`
	Pattern string `json:"pattern,omitempty" jsonschema:"glob pattern to filter tag names"`
}

// TagListOutput lists the matching tags.
type TagListOutput struct {
	Tags []string `json:"tags" jsonschema:"tag names in list order"`
}

func handleTagList(d deps) mcp.ToolHandlerFor[TagListInput, TagListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TagListInput) (*mcp.CallToolResult, TagListOutput, error) {
		result, err := d.ops.ListTags(ctx, d.newContext(in.WorkDir), git.TagListOptions{Pattern: in.Pattern})
		if err != nil {
			return nil, TagListOutput{}, toolError("git_tag_list", err)
		}
		return nil, TagListOutput{Tags: result.Tags}, nil
	}
}

// --- Tag create tool ---

// TagCreateInput names the tag to create.
type TagCreateInput struct {
	WorkDir string `json:"work_dir"          jsonschema:"absolute path of a directory inside the repository"`
	Name    string `json:"name"              jsonschema:"name of the new tag"`
	Ref     string `json:"ref,omitempty"     jsonschema:"revision to tag (default HEAD)"`
	Message string `json:"message,omitempty" jsonschema:"when set, creates an annotated tag with this message"`
	Force   bool   `json:"force,omitempty"   jsonschema:"replace the tag if it already exists"`
}

// TagCreateOutput confirms the creation.
type TagCreateOutput struct {
	Name      string `json:"name"      jsonschema:"the created tag"`
	Annotated bool   `json:"annotated" jsonschema:"true when an annotated tag was created"`
}

func handleTagCreate(d deps) mcp.ToolHandlerFor[TagCreateInput, TagCreateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TagCreateInput) (*mcp.CallToolResult, TagCreateOutput, error) {
		err := d.ops.CreateTag(ctx, d.newContext(in.WorkDir), git.TagCreateOptions{
			Name:    in.Name,
			Ref:     in.Ref,
			Message: in.Message,
			Force:   in.Force,
		})
		if err != nil {
			return nil, TagCreateOutput{}, toolError("git_tag_create", err)
		}
		return nil, TagCreateOutput{Name: in.Name, Annotated: in.Message != ""}, nil
	}
}

// --- Tag delete tool ---

// TagDeleteInput names the tag to delete.
type TagDeleteInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
	Name    string `json:"name"     jsonschema:"tag to delete"`
}

// TagDeleteOutput confirms the deletion.
type TagDeleteOutput struct {
	Name    string `json:"name"    jsonschema:"the deleted tag"`
	Deleted bool   `json:"deleted" jsonschema:"true when the tag was deleted"`
}

func handleTagDelete(d deps) mcp.ToolHandlerFor[TagDeleteInput, TagDeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TagDeleteInput) (*mcp.CallToolResult, TagDeleteOutput, error) {
		if err := d.ops.DeleteTag(ctx, d.newContext(in.WorkDir), git.TagDeleteOptions{Name: in.Name}); err != nil {
			return nil, TagDeleteOutput{}, toolError("git_tag_delete", err)
		}
		return nil, TagDeleteOutput{Name: in.Name, Deleted: true}, nil
	}
}
