package git

import (
	"context"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// Worktree describes one working tree attached to the repository.
type Worktree struct {
	Path     string
	SHA      string
	Branch   string
	Detached bool
	Bare     bool
	Locked   bool
	Prunable bool
}

// WorktreeListResult lists worktrees, the main one first.
type WorktreeListResult struct {
	Worktrees []Worktree
}

// WorktreeAddOptions names the worktree to create.
type WorktreeAddOptions struct {
	Path string
	// Ref checks out an existing branch or commit in the new worktree.
	Ref string
	// Branch creates a new branch and checks it out in the new worktree.
	Branch string
}

// WorktreeRemoveOptions names the worktree to remove.
type WorktreeRemoveOptions struct {
	Path string
	// Force removes the worktree even when it has local changes.
	Force bool
}

// ListWorktrees lists the repository's worktrees.
func (s *Service) ListWorktrees(ctx context.Context, ec ExecutionContext) (WorktreeListResult, error) {
	args := []string{"worktree", "list", "--porcelain"}
	return cachedRead(ctx, s, ec, "worktree_list", args, func(raw RawResult) WorktreeListResult {
		return WorktreeListResult{Worktrees: parseWorktrees(raw.Stdout)}
	})
}

// AddWorktree creates a new worktree at the given path.
func (s *Service) AddWorktree(ctx context.Context, ec ExecutionContext, opts WorktreeAddOptions) error {
	if opts.Path == "" {
		return s.reject(ec, "worktree_add", gitwireerrors.NewValidationError("path", "must not be empty"))
	}
	if err := validatePaths("path", []string{opts.Path}); err != nil {
		return s.reject(ec, "worktree_add", err)
	}

	args := []string{"worktree", "add"}
	if opts.Branch != "" {
		if err := validateRef("branch", opts.Branch); err != nil {
			return s.reject(ec, "worktree_add", err)
		}
		args = append(args, "-b", opts.Branch)
	}
	args = append(args, opts.Path)
	if opts.Ref != "" {
		if err := validateRef("ref", opts.Ref); err != nil {
			return s.reject(ec, "worktree_add", err)
		}
		args = append(args, opts.Ref)
	}

	if _, err := s.execute(ctx, ec, "worktree_add", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// RemoveWorktree removes a worktree.
func (s *Service) RemoveWorktree(ctx context.Context, ec ExecutionContext, opts WorktreeRemoveOptions) error {
	if opts.Path == "" {
		return s.reject(ec, "worktree_remove", gitwireerrors.NewValidationError("path", "must not be empty"))
	}
	if err := validatePaths("path", []string{opts.Path}); err != nil {
		return s.reject(ec, "worktree_remove", err)
	}

	args := []string{"worktree", "remove"}
	if opts.Force {
		args = append(args, "--force")
	}
	args = append(args, opts.Path)

	if _, err := s.execute(ctx, ec, "worktree_remove", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// PruneWorktrees removes worktree records whose directories are gone.
func (s *Service) PruneWorktrees(ctx context.Context, ec ExecutionContext) error {
	if _, err := s.execute(ctx, ec, "worktree_prune", true, "worktree", "prune"); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// parseWorktrees reads the porcelain listing: one block of "key value" lines
// per worktree, blocks separated by blank lines. Flag keys such as
// "detached" and "bare" carry no value.
func parseWorktrees(out string) []Worktree {
	worktrees := []Worktree{}
	var current *Worktree
	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		if key == "worktree" {
			flush()
			current = &Worktree{Path: value}
			continue
		}
		if current == nil {
			continue
		}
		switch key {
		case "HEAD":
			current.SHA = value
		case "branch":
			current.Branch = strings.TrimPrefix(value, "refs/heads/")
		case "detached":
			current.Detached = true
		case "bare":
			current.Bare = true
		case "locked":
			current.Locked = true
		case "prunable":
			current.Prunable = true
		}
	}
	flush()
	return worktrees
}
