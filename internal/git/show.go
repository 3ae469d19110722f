package git

import (
	"context"
	"strings"
)

// ShowOptions names the object to show and how much of it.
type ShowOptions struct {
	// Ref is the object to show; HEAD when empty.
	Ref string
	// Patch includes the full diff below the metadata.
	Patch bool
	// Stat includes the diffstat block instead of, or before, the patch.
	Stat bool
}

// ShowResult carries the commit metadata and whatever diff or stat body the
// options requested. Patch is the raw text as git printed it.
type ShowResult struct {
	Commit Commit
	Patch  string
}

// Show reads a single commit, optionally with its patch.
func (s *Service) Show(ctx context.Context, ec ExecutionContext, opts ShowOptions) (ShowResult, error) {
	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	if err := validateRef("ref", ref); err != nil {
		return ShowResult{}, s.reject(ec, "show", err)
	}

	args := []string{"show", "--pretty=format:" + logFormat}
	if opts.Stat {
		args = append(args, "--stat")
	}
	if !opts.Patch && !opts.Stat {
		args = append(args, "--no-patch")
	}
	args = append(args, ref)

	return cachedRead(ctx, s, ec, "show", args, parseShow)
}

// parseShow splits the formatted metadata record from the body that follows
// it. The record separator marks the boundary, so subjects containing diff
// markers cannot confuse the split.
func parseShow(raw RawResult) ShowResult {
	result := ShowResult{}
	metadata, body, found := strings.Cut(raw.Stdout, recordSep)
	if commits := parseCommits(metadata + recordSep); len(commits) > 0 {
		result.Commit = commits[0]
	}
	if found {
		result.Patch = strings.TrimLeft(body, "\n")
	}
	return result
}
