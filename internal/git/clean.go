package git

import (
	"context"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// CleanOptions controls removal of untracked files. Git refuses to clean
// without an explicit choice, so either Force or DryRun must be set.
type CleanOptions struct {
	Force  bool
	DryRun bool
	// Directories removes untracked directories too.
	Directories bool
	// IgnoredToo also removes files matched by the ignore rules.
	IgnoredToo bool
}

// CleanResult lists the paths that were removed, or that would be removed
// on a dry run.
type CleanResult struct {
	DryRun  bool
	Removed []string
}

// Clean removes untracked files from the working tree.
func (s *Service) Clean(ctx context.Context, ec ExecutionContext, opts CleanOptions) (CleanResult, error) {
	if !opts.Force && !opts.DryRun {
		return CleanResult{}, s.reject(ec, "clean", gitwireerrors.NewValidationError("force", "either force or dry_run must be set"))
	}

	args := []string{"clean"}
	if opts.DryRun {
		args = append(args, "-n")
	} else {
		args = append(args, "-f")
	}
	if opts.Directories {
		args = append(args, "-d")
	}
	if opts.IgnoredToo {
		args = append(args, "-x")
	}

	raw, err := s.execute(ctx, ec, "clean", true, args...)
	if err != nil {
		return CleanResult{}, err
	}

	if !opts.DryRun {
		s.invalidate(ec)
	}
	return CleanResult{DryRun: opts.DryRun, Removed: parseCleanPaths(raw.Stdout)}, nil
}

func parseCleanPaths(out string) []string {
	removed := []string{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if path, ok := strings.CutPrefix(line, "Removing "); ok {
			removed = append(removed, path)
			continue
		}
		if path, ok := strings.CutPrefix(line, "Would remove "); ok {
			removed = append(removed, path)
		}
	}
	return removed
}
