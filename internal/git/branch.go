package git

import (
	"context"
	"strings"
)

// branchFormat emits one TAB-separated record per ref: the short ref name,
// the object name, the HEAD marker, and the short upstream if one is set.
// The name leads because the runner trims surrounding whitespace and the
// marker renders as a bare space on non-current branches.
const branchFormat = "%(refname:short)%09%(objectname)%09%(HEAD)%09%(upstream:short)"

// BranchListOptions widens the listing beyond local branches.
type BranchListOptions struct {
	// All includes remote-tracking branches.
	All bool
}

// Branch describes one branch head.
type Branch struct {
	Name     string
	SHA      string
	Upstream string
	Current  bool
}

// BranchListResult lists branches in ref order.
type BranchListResult struct {
	Branches []Branch
}

// BranchCreateOptions names the branch to create.
type BranchCreateOptions struct {
	Name string
	// StartPoint bases the branch somewhere other than HEAD.
	StartPoint string
	// Checkout switches to the new branch after creating it.
	Checkout bool
}

// BranchDeleteOptions names the branch to delete.
type BranchDeleteOptions struct {
	Name string
	// Force deletes the branch even when it is not fully merged.
	Force bool
}

// CheckoutOptions names the branch or commit to switch to.
type CheckoutOptions struct {
	Ref string
}

// ListBranches lists branch heads, local ones by default.
func (s *Service) ListBranches(ctx context.Context, ec ExecutionContext, opts BranchListOptions) (BranchListResult, error) {
	args := []string{"for-each-ref", "--format=" + branchFormat, "refs/heads"}
	if opts.All {
		args = append(args, "refs/remotes")
	}

	return cachedRead(ctx, s, ec, "branch_list", args, func(raw RawResult) BranchListResult {
		return BranchListResult{Branches: parseBranches(raw.Stdout)}
	})
}

// CreateBranch creates a branch, optionally switching to it.
func (s *Service) CreateBranch(ctx context.Context, ec ExecutionContext, opts BranchCreateOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "branch_create", err)
	}
	if opts.StartPoint != "" {
		if err := validateRef("start_point", opts.StartPoint); err != nil {
			return s.reject(ec, "branch_create", err)
		}
	}

	var args []string
	if opts.Checkout {
		args = []string{"checkout", "-b", opts.Name}
	} else {
		args = []string{"branch", opts.Name}
	}
	if opts.StartPoint != "" {
		args = append(args, opts.StartPoint)
	}

	if _, err := s.execute(ctx, ec, "branch_create", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// DeleteBranch deletes a local branch.
func (s *Service) DeleteBranch(ctx context.Context, ec ExecutionContext, opts BranchDeleteOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "branch_delete", err)
	}

	flag := "-d"
	if opts.Force {
		flag = "-D"
	}
	if _, err := s.execute(ctx, ec, "branch_delete", true, "branch", flag, opts.Name); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// Checkout switches the working tree to a branch or commit.
func (s *Service) Checkout(ctx context.Context, ec ExecutionContext, opts CheckoutOptions) error {
	if err := validateRef("ref", opts.Ref); err != nil {
		return s.reject(ec, "checkout", err)
	}

	if _, err := s.execute(ctx, ec, "checkout", true, "checkout", opts.Ref); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// parseBranches reads the TAB-separated listing. The whitespace-only marker
// and upstream fields can be trimmed off the final line, so short records
// still parse; a missing marker can only mean a non-current branch.
func parseBranches(out string) []Branch {
	branches := []Branch{}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		branch := Branch{Name: fields[0], SHA: fields[1]}
		if len(fields) > 2 {
			branch.Current = fields[2] == "*"
		}
		if len(fields) > 3 {
			branch.Upstream = fields[3]
		}
		branches = append(branches, branch)
	}
	return branches
}
