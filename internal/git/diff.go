package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// DiffStat summarizes a change set.
type DiffStat struct {
	Files      int
	Insertions int
	Deletions  int
}

// DiffOptions selects what to compare. With neither Base nor Target the
// working tree is compared against the index, or against HEAD with Staged.
type DiffOptions struct {
	Base   string
	Target string
	// Staged compares the index instead of the working tree.
	Staged bool
	// NameOnly lists changed paths instead of producing a patch.
	NameOnly bool
	// Stat appends the diffstat summary.
	Stat bool
	// Unified overrides the context line count when positive.
	Unified int
	Paths   []string
}

// DiffResult carries the requested view of a comparison. Patch is the raw
// text exactly as git printed it, including any binary-file notices.
type DiffResult struct {
	Patch  string
	Files  []string
	Stat   DiffStat
	Binary bool
}

// Diff compares revisions, the index, or the working tree.
func (s *Service) Diff(ctx context.Context, ec ExecutionContext, opts DiffOptions) (DiffResult, error) {
	args, err := encodeDiffArgs(opts)
	if err != nil {
		return DiffResult{}, s.reject(ec, "diff", err)
	}
	return cachedRead(ctx, s, ec, "diff", args, func(raw RawResult) DiffResult {
		return parseDiff(raw, opts)
	})
}

func encodeDiffArgs(opts DiffOptions) ([]string, error) {
	args := []string{"diff"}
	if opts.Staged {
		args = append(args, "--cached")
	}
	if opts.NameOnly {
		args = append(args, "--name-only")
	}
	if opts.Stat {
		args = append(args, "--stat")
	}
	if opts.Unified > 0 {
		args = append(args, fmt.Sprintf("--unified=%d", opts.Unified))
	}
	if opts.Base != "" {
		if err := validateRef("base", opts.Base); err != nil {
			return nil, err
		}
		args = append(args, opts.Base)
	}
	if opts.Target != "" {
		if opts.Base == "" {
			return nil, gitwireerrors.NewValidationError("base", "required when target is set")
		}
		if err := validateRef("target", opts.Target); err != nil {
			return nil, err
		}
		args = append(args, opts.Target)
	}
	if len(opts.Paths) > 0 {
		if err := validatePaths("paths", opts.Paths); err != nil {
			return nil, err
		}
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}
	return args, nil
}

func parseDiff(raw RawResult, opts DiffOptions) DiffResult {
	result := DiffResult{Files: []string{}}
	if opts.NameOnly {
		result.Files = splitLines(raw.Stdout)
		return result
	}
	result.Patch = raw.Stdout
	result.Binary = strings.Contains(raw.Stdout, "Binary files ") && strings.Contains(raw.Stdout, " differ")
	if opts.Stat {
		result.Stat = parseDiffstat(raw.Stdout)
	}
	return result
}

// diffstatLineRegex matches the summary line of --stat output, e.g.
// " 3 files changed, 45 insertions(+), 12 deletions(-)". Each count beyond
// the file count is optional.
var diffstatLineRegex = regexp.MustCompile(`(\d+)\s+files?\s+changed(?:,\s+(\d+)\s+insertions?\(\+\))?(?:,\s+(\d+)\s+deletions?\(-\))?`)

// parseDiffstat extracts the counts from the last non-empty line of --stat
// output. Anything without a summary line parses as all zeroes.
func parseDiffstat(out string) DiffStat {
	lines := strings.Split(out, "\n")
	for idx := len(lines) - 1; idx >= 0; idx-- {
		line := strings.TrimSpace(lines[idx])
		if line == "" {
			continue
		}
		matches := diffstatLineRegex.FindStringSubmatch(line)
		if matches == nil {
			return DiffStat{}
		}
		return DiffStat{
			Files:      matchInt(matches, 1),
			Insertions: matchInt(matches, 2),
			Deletions:  matchInt(matches, 3),
		}
	}
	return DiffStat{}
}

func matchInt(matches []string, idx int) int {
	if idx >= len(matches) || matches[idx] == "" {
		return 0
	}
	n, err := strconv.Atoi(matches[idx])
	if err != nil {
		return 0
	}
	return n
}

// splitLines splits trimmed output into lines, mapping empty output to an
// empty slice.
func splitLines(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}
