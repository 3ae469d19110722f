package git

import (
	"context"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// CherryPickOptions names the commits to apply onto the current branch.
type CherryPickOptions struct {
	Refs []string
	// NoCommit applies the changes to the working tree and index without
	// creating commits.
	NoCommit bool
}

// CherryPickResult reports the outcome. As with merges, a conflict stop is
// reported through Conflicts rather than as an error.
type CherryPickResult struct {
	Applied   bool
	Conflicts []Conflict
}

// CherryPick applies one or more commits onto the current branch.
func (s *Service) CherryPick(ctx context.Context, ec ExecutionContext, opts CherryPickOptions) (CherryPickResult, error) {
	if len(opts.Refs) == 0 {
		return CherryPickResult{}, s.reject(ec, "cherry_pick", gitwireerrors.NewValidationError("refs", "must name at least one commit"))
	}
	for _, ref := range opts.Refs {
		if err := validateRef("refs", ref); err != nil {
			return CherryPickResult{}, s.reject(ec, "cherry_pick", err)
		}
	}

	args := []string{"cherry-pick"}
	if opts.NoCommit {
		args = append(args, "-n")
	}
	args = append(args, opts.Refs...)

	if _, err := s.execute(ctx, ec, "cherry_pick", true, args...); err != nil {
		if conflicts := conflictsFrom(err); len(conflicts) > 0 {
			s.invalidate(ec)
			return CherryPickResult{Conflicts: conflicts}, nil
		}
		return CherryPickResult{}, err
	}

	s.invalidate(ec)
	return CherryPickResult{Applied: true, Conflicts: []Conflict{}}, nil
}

// AbortCherryPick abandons an in-progress cherry-pick sequence.
func (s *Service) AbortCherryPick(ctx context.Context, ec ExecutionContext) error {
	if _, err := s.execute(ctx, ec, "cherry_pick_abort", true, "cherry-pick", "--abort"); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
