package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// BlameOptions names the file to annotate, optionally bounded to a line
// range or evaluated at a revision.
type BlameOptions struct {
	Path string
	Ref  string
	// StartLine and EndLine restrict the annotation when both are positive.
	StartLine int
	EndLine   int
}

// BlameLine attributes one line of the file to the commit that introduced it.
type BlameLine struct {
	SHA        string
	Author     string
	AuthorMail string
	AuthorTime time.Time
	Summary    string
	// OrigLine is the line's number in the blamed commit's version of the
	// file; FinalLine its number in the version being annotated.
	OrigLine  int
	FinalLine int
	Content   string
}

// BlameResult carries the attribution of every annotated line in order.
type BlameResult struct {
	Path  string
	Lines []BlameLine
}

// Blame annotates a file line by line.
func (s *Service) Blame(ctx context.Context, ec ExecutionContext, opts BlameOptions) (BlameResult, error) {
	if opts.Path == "" {
		return BlameResult{}, s.reject(ec, "blame", gitwireerrors.NewValidationError("path", "must not be empty"))
	}
	if err := validatePaths("path", []string{opts.Path}); err != nil {
		return BlameResult{}, s.reject(ec, "blame", err)
	}

	args := []string{"blame", "--porcelain"}
	if opts.StartLine > 0 && opts.EndLine > 0 {
		args = append(args, "-L", fmt.Sprintf("%d,%d", opts.StartLine, opts.EndLine))
	}
	if opts.Ref != "" {
		if err := validateRef("ref", opts.Ref); err != nil {
			return BlameResult{}, s.reject(ec, "blame", err)
		}
		args = append(args, opts.Ref)
	}
	args = append(args, "--", opts.Path)

	return cachedRead(ctx, s, ec, "blame", args, func(raw RawResult) BlameResult {
		result := parseBlame(raw)
		result.Path = opts.Path
		return result
	})
}

type blameHeader struct {
	sha       string
	origLine  int
	finalLine int
}

type blameCommit struct {
	author  string
	mail    string
	when    time.Time
	summary string
}

// parseBlame reads porcelain blame output. Every line of the file gets a
// header "<sha> <origLine> <finalLine> [<groupSize>]" followed by metadata
// key-value lines and a tab-prefixed content line. Git emits a commit's
// metadata only the first time the commit appears, so parsed metadata is
// cached per commit and replayed for later blocks.
func parseBlame(raw RawResult) BlameResult {
	result := BlameResult{Lines: []BlameLine{}}
	commits := map[string]*blameCommit{}
	var current *blameHeader

	for _, line := range strings.Split(raw.Stdout, "\n") {
		if content, ok := strings.CutPrefix(line, "\t"); ok {
			if current == nil {
				continue
			}
			meta := commits[current.sha]
			if meta == nil {
				meta = &blameCommit{}
			}
			result.Lines = append(result.Lines, BlameLine{
				SHA:        current.sha,
				Author:     meta.author,
				AuthorMail: meta.mail,
				AuthorTime: meta.when,
				Summary:    meta.summary,
				OrigLine:   current.origLine,
				FinalLine:  current.finalLine,
				Content:    content,
			})
			current = nil
			continue
		}

		if header, ok := parseBlameHeader(line); ok {
			current = &header
			if _, seen := commits[header.sha]; !seen {
				commits[header.sha] = &blameCommit{}
			}
			continue
		}

		if current == nil {
			continue
		}
		meta := commits[current.sha]
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "author":
			meta.author = value
		case "author-mail":
			meta.mail = strings.Trim(value, "<>")
		case "author-time":
			if ts, err := strconv.ParseInt(value, 10, 64); err == nil {
				meta.when = time.Unix(ts, 0)
			}
		case "summary":
			meta.summary = value
		}
	}

	// A header left pending at end of input was followed by an empty content
	// line that the output trim removed.
	if current != nil {
		meta := commits[current.sha]
		if meta == nil {
			meta = &blameCommit{}
		}
		result.Lines = append(result.Lines, BlameLine{
			SHA:        current.sha,
			Author:     meta.author,
			AuthorMail: meta.mail,
			AuthorTime: meta.when,
			Summary:    meta.summary,
			OrigLine:   current.origLine,
			FinalLine:  current.finalLine,
		})
	}
	return result
}

// parseBlameHeader recognizes "<40-hex> <origLine> <finalLine>" with an
// optional trailing group size.
func parseBlameHeader(line string) (blameHeader, bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 && len(fields) != 4 {
		return blameHeader{}, false
	}
	if !isHex40(fields[0]) {
		return blameHeader{}, false
	}
	origLine, err := strconv.Atoi(fields[1])
	if err != nil {
		return blameHeader{}, false
	}
	finalLine, err := strconv.Atoi(fields[2])
	if err != nil {
		return blameHeader{}, false
	}
	return blameHeader{sha: fields[0], origLine: origLine, finalLine: finalLine}, true
}

func isHex40(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
