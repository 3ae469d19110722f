package git

import (
	"context"
	"regexp"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// CommitOptions describes the commit to create. Message is required except
// when amending, where an empty message reuses the previous one.
type CommitOptions struct {
	Message string
	// All stages tracked-file changes before committing.
	All bool
	// Amend replaces the current tip instead of adding a commit.
	Amend      bool
	AllowEmpty bool
	SignOff    bool
	NoVerify   bool
	// Author overrides the author as "Name <email>".
	Author string
}

// CommitResult reports the commit that was created.
type CommitResult struct {
	SHA      string
	Branch   string
	Detached bool
	Subject  string
	Stat     DiffStat
}

// commitSummaryRegex matches the first line of commit output, e.g.
// "[main abc1234] subject". The branch group is greedy because a detached
// HEAD reports the two-word "detached HEAD" in the same position.
var commitSummaryRegex = regexp.MustCompile(`^\[(.+) ([0-9a-f]{4,40})\] (.*)$`)

// Commit records staged changes. The full hash is confirmed with rev-parse
// after the commit lands, since the summary line only carries the short form.
func (s *Service) Commit(ctx context.Context, ec ExecutionContext, opts CommitOptions) (CommitResult, error) {
	args, err := encodeCommitArgs(opts)
	if err != nil {
		return CommitResult{}, s.reject(ec, "commit", err)
	}

	raw, err := s.execute(ctx, ec, "commit", true, args...)
	if err != nil {
		return CommitResult{}, err
	}
	s.invalidate(ec)

	result := parseCommitSummary(raw.Stdout)
	if confirmed, err := s.runner.Run(ctx, ec.WorkDir, "rev-parse", "HEAD"); err == nil {
		if sha := strings.TrimSpace(confirmed.Stdout); sha != "" {
			result.SHA = sha
		}
	}
	return result, nil
}

func encodeCommitArgs(opts CommitOptions) ([]string, error) {
	if opts.Message == "" && !opts.Amend {
		return nil, gitwireerrors.NewValidationError("message", "must not be empty")
	}

	args := []string{"commit"}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Amend {
		args = append(args, "--amend")
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	} else {
		args = append(args, "--no-edit")
	}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if opts.SignOff {
		args = append(args, "--signoff")
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}
	return args, nil
}

// parseCommitSummary reads the "[branch short] subject" line and the diffstat
// that follows it. Root commits carry a "(root-commit)" marker inside the
// branch group and a detached HEAD reports "detached HEAD" there.
func parseCommitSummary(out string) CommitResult {
	result := CommitResult{Stat: parseDiffstat(out)}
	for _, line := range strings.Split(out, "\n") {
		matches := commitSummaryRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}
		branch := strings.TrimSuffix(matches[1], " (root-commit)")
		if branch == "detached HEAD" {
			result.Detached = true
		} else {
			result.Branch = branch
		}
		result.SHA = matches[2]
		result.Subject = matches[3]
		break
	}
	return result
}
