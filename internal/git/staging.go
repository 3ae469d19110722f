package git

import (
	"context"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// StageOptions selects what to add to the index. At least one of Paths, All,
// or Update must be set.
type StageOptions struct {
	Paths []string
	// All stages every change in the working tree, including deletions and
	// untracked files.
	All bool
	// Update stages changes to tracked files only.
	Update bool
}

// Stage adds changes to the index.
func (s *Service) Stage(ctx context.Context, ec ExecutionContext, opts StageOptions) error {
	if !opts.All && !opts.Update && len(opts.Paths) == 0 {
		return s.reject(ec, "stage", gitwireerrors.NewValidationError("paths", "nothing selected to stage"))
	}

	args := []string{"add"}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Update {
		args = append(args, "--update")
	}
	if len(opts.Paths) > 0 {
		if err := validatePaths("paths", opts.Paths); err != nil {
			return s.reject(ec, "stage", err)
		}
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}

	if _, err := s.execute(ctx, ec, "stage", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// UnstageOptions selects what to remove from the index. Empty Paths unstages
// everything.
type UnstageOptions struct {
	Paths []string
}

// Unstage removes changes from the index, leaving the working tree alone.
func (s *Service) Unstage(ctx context.Context, ec ExecutionContext, opts UnstageOptions) error {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if err := validatePaths("paths", paths); err != nil {
		return s.reject(ec, "unstage", err)
	}

	args := append([]string{"restore", "--staged", "--"}, paths...)
	if _, err := s.execute(ctx, ec, "unstage", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
