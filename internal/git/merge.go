package git

import (
	"context"
	"errors"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// Conflict is one CONFLICT marker reported by a merge-like command.
type Conflict struct {
	// Reason is the parenthesized kind, such as "content" or "modify/delete".
	Reason string
	Path   string
}

// MergeOptions selects what to merge and how.
type MergeOptions struct {
	Ref     string
	NoFF    bool
	FFOnly  bool
	Squash  bool
	Message string
}

// MergeResult reports the outcome of a merge. A merge that stopped on
// conflicts is not an error: Merged is false and Conflicts lists the
// conflicted paths, leaving the repository in the conflicted state for the
// caller to resolve or abort.
type MergeResult struct {
	Merged      bool
	FastForward bool
	Conflicts   []Conflict
}

// Merge merges a ref into the current branch.
func (s *Service) Merge(ctx context.Context, ec ExecutionContext, opts MergeOptions) (MergeResult, error) {
	if err := validateRef("ref", opts.Ref); err != nil {
		return MergeResult{}, s.reject(ec, "merge", err)
	}
	if opts.NoFF && opts.FFOnly {
		return MergeResult{}, s.reject(ec, "merge", gitwireerrors.NewValidationError("no_ff", "cannot be combined with ff_only"))
	}

	args := []string{"merge"}
	if opts.NoFF {
		args = append(args, "--no-ff")
	}
	if opts.FFOnly {
		args = append(args, "--ff-only")
	}
	if opts.Squash {
		args = append(args, "--squash")
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	} else if !opts.Squash {
		args = append(args, "--no-edit")
	}
	args = append(args, opts.Ref)

	raw, err := s.execute(ctx, ec, "merge", true, args...)
	if err != nil {
		if conflicts := conflictsFrom(err); len(conflicts) > 0 {
			s.invalidate(ec)
			return MergeResult{Conflicts: conflicts}, nil
		}
		return MergeResult{}, err
	}

	s.invalidate(ec)
	return MergeResult{
		Merged:      true,
		FastForward: strings.Contains(raw.Stdout, "Fast-forward"),
		Conflicts:   []Conflict{},
	}, nil
}

// AbortMerge abandons an in-progress merge and restores the pre-merge state.
func (s *Service) AbortMerge(ctx context.Context, ec ExecutionContext) error {
	if _, err := s.execute(ctx, ec, "merge_abort", true, "merge", "--abort"); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// conflictsFrom extracts CONFLICT markers from a failed command's output.
// A non-empty result means the failure was a conflict stop, not an error.
func conflictsFrom(err error) []Conflict {
	var cmdErr *gitwireerrors.CommandError
	if !errors.As(err, &cmdErr) {
		return nil
	}
	return parseConflicts(cmdErr.Stdout, cmdErr.Stderr)
}

// parseConflicts collects "CONFLICT (<reason>): ..." lines from both output
// streams, stdout first, preserving the order git printed them in.
func parseConflicts(stdout, stderr string) []Conflict {
	var conflicts []Conflict
	for _, out := range []string{stdout, stderr} {
		for _, line := range strings.Split(out, "\n") {
			rest, ok := strings.CutPrefix(strings.TrimSpace(line), "CONFLICT (")
			if !ok {
				continue
			}
			reason, detail, ok := strings.Cut(rest, "): ")
			if !ok {
				continue
			}
			conflicts = append(conflicts, Conflict{Reason: reason, Path: conflictPath(detail)})
		}
	}
	return conflicts
}

// conflictPath pulls the path out of a conflict detail. Content conflicts
// read "Merge conflict in <path>"; other kinds lead with the path itself.
func conflictPath(detail string) string {
	if _, path, ok := strings.Cut(detail, "Merge conflict in "); ok {
		return strings.TrimSpace(path)
	}
	fields := strings.Fields(detail)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
