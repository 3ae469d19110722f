package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// reflogFormat mirrors logFormat: unit separators between fields, a record
// separator after each entry. %gd is the reflog selector, %gs its subject.
var reflogFormat = strings.Join([]string{"%H", "%h", "%gd", "%gs", "%at"}, "%x1f") + "%x1e"

// ReflogOptions selects which ref's reflog to read and how much of it.
type ReflogOptions struct {
	Ref      string
	MaxCount int
}

// ReflogEntry is one recorded movement of a ref.
type ReflogEntry struct {
	// Index is the position parsed from the selector, so HEAD@{2} yields 2.
	Index    int
	Selector string
	SHA      string
	Short    string
	// Action is the operation that moved the ref, such as "commit" or
	// "checkout"; Subject is the rest of the reflog message.
	Action  string
	Subject string
	Date    time.Time
}

// ReflogResult lists reflog entries newest first.
type ReflogResult struct {
	Ref     string
	Entries []ReflogEntry
}

// Reflog reads the movement history of a ref, HEAD by default.
func (s *Service) Reflog(ctx context.Context, ec ExecutionContext, opts ReflogOptions) (ReflogResult, error) {
	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	if err := validateRef("ref", ref); err != nil {
		return ReflogResult{}, s.reject(ec, "reflog", err)
	}

	args := []string{"reflog", "show", "--format=" + reflogFormat}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	args = append(args, ref)

	return cachedRead(ctx, s, ec, "reflog", args, func(raw RawResult) ReflogResult {
		return ReflogResult{Ref: ref, Entries: parseReflog(raw.Stdout)}
	})
}

func parseReflog(out string) []ReflogEntry {
	entries := []ReflogEntry{}
	if strings.TrimSpace(out) == "" {
		return entries
	}
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.Split(record, fieldSep)
		if len(fields) < 5 {
			continue
		}
		timestamp, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
		if err != nil {
			timestamp = 0
		}
		entry := ReflogEntry{
			SHA:      fields[0],
			Short:    fields[1],
			Selector: fields[2],
			Index:    parseSelectorIndex(fields[2]),
			Date:     time.Unix(timestamp, 0),
		}
		entry.Action, entry.Subject = splitReflogSubject(fields[3])
		entries = append(entries, entry)
	}
	return entries
}

// parseSelectorIndex extracts N from a selector like "HEAD@{N}". Selectors
// that carry something other than a number, such as a date, yield -1.
func parseSelectorIndex(selector string) int {
	open := strings.Index(selector, "{")
	end := strings.Index(selector, "}")
	if open < 0 || end <= open {
		return -1
	}
	index, err := strconv.Atoi(selector[open+1 : end])
	if err != nil {
		return -1
	}
	return index
}

func splitReflogSubject(subject string) (string, string) {
	action, rest, found := strings.Cut(subject, ": ")
	if !found {
		return subject, ""
	}
	return action, rest
}
