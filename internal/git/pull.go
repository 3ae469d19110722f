package git

import (
	"context"
	"strings"
)

// PullOptions selects where to pull from and how to integrate the result.
type PullOptions struct {
	Remote string
	Ref    string
	Rebase bool
	FFOnly bool
}

// PullResult reports the outcome of a pull. Conflict stops surface through
// Conflicts rather than as errors, the same as Merge.
type PullResult struct {
	// Updated is false when the branch was already up to date.
	Updated     bool
	FastForward bool
	Conflicts   []Conflict
}

// Pull fetches from a remote and integrates the fetched head into the
// current branch.
func (s *Service) Pull(ctx context.Context, ec ExecutionContext, opts PullOptions) (PullResult, error) {
	args := []string{"pull"}
	if opts.Rebase {
		args = append(args, "--rebase")
	} else {
		args = append(args, "--no-edit")
	}
	if opts.FFOnly {
		args = append(args, "--ff-only")
	}
	if opts.Remote != "" {
		if err := validateRef("remote", opts.Remote); err != nil {
			return PullResult{}, s.reject(ec, "pull", err)
		}
		args = append(args, opts.Remote)
		if opts.Ref != "" {
			if err := validateRef("ref", opts.Ref); err != nil {
				return PullResult{}, s.reject(ec, "pull", err)
			}
			args = append(args, opts.Ref)
		}
	}

	raw, err := s.execute(ctx, ec, "pull", true, args...)
	if err != nil {
		if conflicts := conflictsFrom(err); len(conflicts) > 0 {
			s.invalidate(ec)
			return PullResult{Conflicts: conflicts}, nil
		}
		return PullResult{}, err
	}

	s.invalidate(ec)
	return PullResult{
		Updated:     !strings.Contains(raw.Stdout, "Already up to date"),
		FastForward: strings.Contains(raw.Stdout, "Fast-forward"),
		Conflicts:   []Conflict{},
	}, nil
}
