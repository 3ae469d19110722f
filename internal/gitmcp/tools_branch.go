package gitmcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"gitwire.dev/gitwire/internal/git"
)

// --- Branch list tool ---

// BranchListInput selects which branches to list.
type BranchListInput struct {
	WorkDir string `json:"work_dir"      jsonschema:"absolute path of a directory inside the repository"`
	All     bool   `json:"all,omitempty" jsonschema:"include remote-tracking branches"`
}

// Branch is one branch with its tip and tracking state.
type Branch struct {
	Name     string `json:"name"               jsonschema:"branch name"`
	SHA      string `json:"sha"                jsonschema:"tip commit SHA"`
	Upstream string `json:"upstream,omitempty" jsonschema:"upstream branch when one is configured"`
	Current  bool   `json:"current"            jsonschema:"true for the checked out branch"`
}

// BranchListOutput lists the branches.
type BranchListOutput struct {
	Branches []Branch `json:"branches" jsonschema:"branches in ref order"`
}

func handleBranchList(d deps) mcp.ToolHandlerFor[BranchListInput, BranchListOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BranchListInput) (*mcp.CallToolResult, BranchListOutput, error) {
		result, err := d.ops.ListBranches(ctx, d.newContext(in.WorkDir), git.BranchListOptions{All: in.All})
		if err != nil {
			return nil, BranchListOutput{}, toolError("git_branch_list", err)
		}

		branches := make([]Branch, 0, len(result.Branches))
		for _, b := range result.Branches {
			branches = append(branches, Branch{
				Name:     b.Name,
				SHA:      b.SHA,
				Upstream: b.Upstream,
				Current:  b.Current,
			})
		}
		return nil, BranchListOutput{Branches: branches}, nil
	}
}

// --- Branch create tool ---

// BranchCreateInput names the branch to create.
type BranchCreateInput struct {
	WorkDir    string `json:"work_dir"              jsonschema:"absolute path of a directory inside the repository"`
	Name       string `json:"name"                  jsonschema:"name of the new branch"`
	StartPoint string `json:"start_point,omitempty" jsonschema:"revision to branch from (default HEAD)"`
	Checkout   bool   `json:"checkout,omitempty"    jsonschema:"switch to the new branch immediately"`
}

// BranchCreateOutput confirms the creation.
type BranchCreateOutput struct {
	Name       string `json:"name"        jsonschema:"the created branch"`
	CheckedOut bool   `json:"checked_out" jsonschema:"true when the branch was also checked out"`
}

func handleBranchCreate(d deps) mcp.ToolHandlerFor[BranchCreateInput, BranchCreateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BranchCreateInput) (*mcp.CallToolResult, BranchCreateOutput, error) {
		err := d.ops.CreateBranch(ctx, d.newContext(in.WorkDir), git.BranchCreateOptions{
			Name:       in.Name,
			StartPoint: in.StartPoint,
			Checkout:   in.Checkout,
		})
		if err != nil {
			return nil, BranchCreateOutput{}, toolError("git_branch_create", err)
		}
		return nil, BranchCreateOutput{Name: in.Name, CheckedOut: in.Checkout}, nil
	}
}

// --- Branch delete tool ---

// BranchDeleteInput names the branch to delete.
type BranchDeleteInput struct {
	WorkDir string `json:"work_dir"        jsonschema:"absolute path of a directory inside the repository"`
	Name    string `json:"name"            jsonschema:"branch to delete"`
	Force   bool   `json:"force,omitempty" jsonschema:"delete even when the branch is not merged"`
}

// BranchDeleteOutput confirms the deletion.
type BranchDeleteOutput struct {
	Name    string `json:"name"    jsonschema:"the deleted branch"`
	Deleted bool   `json:"deleted" jsonschema:"true when the branch was deleted"`
}

func handleBranchDelete(d deps) mcp.ToolHandlerFor[BranchDeleteInput, BranchDeleteOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in BranchDeleteInput) (*mcp.CallToolResult, BranchDeleteOutput, error) {
		err := d.ops.DeleteBranch(ctx, d.newContext(in.WorkDir), git.BranchDeleteOptions{
			Name:  in.Name,
			Force: in.Force,
		})
		if err != nil {
			return nil, BranchDeleteOutput{}, toolError("git_branch_delete", err)
		}
		return nil, BranchDeleteOutput{Name: in.Name, Deleted: true}, nil
	}
}

// --- Checkout tool ---

// CheckoutInput names the ref to switch to.
type CheckoutInput struct {
	WorkDir string `json:"work_dir" jsonschema:"absolute path of a directory inside the repository"`
	Ref     string `json:"ref"      jsonschema:"branch, tag, or revision to check out"`
}

// CheckoutOutput confirms the switch.
type CheckoutOutput struct {
	Ref string `json:"ref" jsonschema:"the ref now checked out"`
}

func handleCheckout(d deps) mcp.ToolHandlerFor[CheckoutInput, CheckoutOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in CheckoutInput) (*mcp.CallToolResult, CheckoutOutput, error) {
		err := d.ops.Checkout(ctx, d.newContext(in.WorkDir), git.CheckoutOptions{Ref: in.Ref})
		if err != nil {
			return nil, CheckoutOutput{}, toolError("git_checkout", err)
		}
		return nil, CheckoutOutput{Ref: in.Ref}, nil
	}
}
