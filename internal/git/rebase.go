package git

import (
	"context"
)

// RebaseOptions selects what to rebase the current branch onto.
type RebaseOptions struct {
	Upstream string
	// Onto replays the commits onto a different base than the upstream.
	Onto string
	// Autostash stashes local changes before rebasing and restores them
	// afterwards.
	Autostash bool
}

// RebaseResult reports the outcome. A rebase that stopped on conflicts is
// not an error: Completed is false and Conflicts lists the conflicted paths,
// leaving the rebase in progress for ContinueRebase or AbortRebase.
type RebaseResult struct {
	Completed bool
	Conflicts []Conflict
}

// Rebase replays the current branch's commits on top of an upstream.
func (s *Service) Rebase(ctx context.Context, ec ExecutionContext, opts RebaseOptions) (RebaseResult, error) {
	if err := validateRef("upstream", opts.Upstream); err != nil {
		return RebaseResult{}, s.reject(ec, "rebase", err)
	}

	args := []string{"rebase"}
	if opts.Autostash {
		args = append(args, "--autostash")
	}
	if opts.Onto != "" {
		if err := validateRef("onto", opts.Onto); err != nil {
			return RebaseResult{}, s.reject(ec, "rebase", err)
		}
		args = append(args, "--onto", opts.Onto)
	}
	args = append(args, opts.Upstream)

	return s.runRebase(ctx, ec, "rebase", args)
}

// ContinueRebase resumes a conflicted rebase after the conflicts were
// resolved and staged. It may stop again on the next conflicting commit.
func (s *Service) ContinueRebase(ctx context.Context, ec ExecutionContext) (RebaseResult, error) {
	return s.runRebase(ctx, ec, "rebase_continue", []string{"rebase", "--continue"})
}

// AbortRebase abandons an in-progress rebase and restores the original
// branch state.
func (s *Service) AbortRebase(ctx context.Context, ec ExecutionContext) error {
	if _, err := s.execute(ctx, ec, "rebase_abort", true, "rebase", "--abort"); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

func (s *Service) runRebase(ctx context.Context, ec ExecutionContext, op string, args []string) (RebaseResult, error) {
	if _, err := s.execute(ctx, ec, op, true, args...); err != nil {
		if conflicts := conflictsFrom(err); len(conflicts) > 0 {
			s.invalidate(ec)
			return RebaseResult{Conflicts: conflicts}, nil
		}
		return RebaseResult{}, err
	}

	s.invalidate(ec)
	return RebaseResult{Completed: true, Conflicts: []Conflict{}}, nil
}
