package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Field and record separators for --pretty=format output. The non-printable
// ASCII separators cannot appear in commit subjects or author names, so a
// free-text field can never corrupt record boundaries the way a printable
// marker could.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logFormat renders one commit per record. The body is last so its embedded
// newlines stay inside the final field.
var logFormat = strings.Join([]string{
	"%H",  // full hash
	"%h",  // short hash
	"%an", // author name
	"%ae", // author email
	"%at", // author time, unix
	"%P",  // parent hashes
	"%D",  // ref decorations
	"%s",  // subject
	"%b",  // body
}, "%x1f") + "%x1e"

// Commit is one parsed history entry.
type Commit struct {
	SHA         string
	Short       string
	Author      string
	AuthorEmail string
	Date        time.Time
	Parents     []string
	Decorations []string
	Subject     string
	Body        string
}

// LogOptions selects and bounds the history to read.
type LogOptions struct {
	// Ref is the starting point; HEAD when empty.
	Ref         string
	MaxCount    int
	Skip        int
	Author      string
	Since       string
	Until       string
	Grep        string
	FirstParent bool
	All         bool
	// Paths restricts history to commits touching these paths.
	Paths []string
}

// LogResult holds the commits in the order git reported them.
type LogResult struct {
	Commits []Commit
}

// Log reads commit history.
func (s *Service) Log(ctx context.Context, ec ExecutionContext, opts LogOptions) (LogResult, error) {
	args, err := encodeLogArgs(opts)
	if err != nil {
		return LogResult{}, s.reject(ec, "log", err)
	}
	return cachedRead(ctx, s, ec, "log", args, func(raw RawResult) LogResult {
		return LogResult{Commits: parseCommits(raw.Stdout)}
	})
}

func encodeLogArgs(opts LogOptions) ([]string, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	if opts.Skip > 0 {
		args = append(args, "--skip", strconv.Itoa(opts.Skip))
	}
	if opts.FirstParent {
		args = append(args, "--first-parent")
	}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Author != "" {
		args = append(args, "--author", opts.Author)
	}
	if opts.Since != "" {
		args = append(args, "--since", opts.Since)
	}
	if opts.Until != "" {
		args = append(args, "--until", opts.Until)
	}
	if opts.Grep != "" {
		args = append(args, "--grep", opts.Grep)
	}
	if opts.Ref != "" {
		if err := validateRef("ref", opts.Ref); err != nil {
			return nil, err
		}
		args = append(args, opts.Ref)
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

// parseCommits splits formatted log output into commits: records first, then
// fields. Short or malformed records are skipped, and empty output means
// empty history, not an error.
func parseCommits(out string) []Commit {
	commits := []Commit{}
	if strings.TrimSpace(out) == "" {
		return commits
	}

	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		if commit, ok := parseCommitRecord(record); ok {
			commits = append(commits, commit)
		}
	}
	return commits
}

func parseCommitRecord(record string) (Commit, bool) {
	fields := strings.Split(record, fieldSep)
	if len(fields) < 9 {
		return Commit{}, false
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		timestamp = 0
	}

	return Commit{
		SHA:         strings.TrimSpace(fields[0]),
		Short:       strings.TrimSpace(fields[1]),
		Author:      strings.TrimSpace(fields[2]),
		AuthorEmail: strings.TrimSpace(fields[3]),
		Date:        time.Unix(timestamp, 0),
		Parents:     splitList(fields[5], " "),
		Decorations: splitList(fields[6], ", "),
		Subject:     strings.TrimSpace(fields[7]),
		Body:        strings.TrimSpace(fields[8]),
	}, true
}

// splitList splits a separator-joined field, returning an empty slice for an
// empty field.
func splitList(field, sep string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return []string{}
	}
	return strings.Split(field, sep)
}
