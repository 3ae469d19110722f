package gitmcp

import (
	"time"

	"gitwire.dev/gitwire/internal/git"
)

// Commit is one history entry for tool output.
type Commit struct {
	SHA         string   `json:"sha"                    jsonschema:"full commit SHA"`
	Short       string   `json:"short"                  jsonschema:"abbreviated SHA"`
	Author      string   `json:"author"                 jsonschema:"author name"`
	AuthorEmail string   `json:"author_email"           jsonschema:"author email"`
	Date        string   `json:"date"                   jsonschema:"author date, RFC 3339"`
	Parents     []string `json:"parents,omitempty"      jsonschema:"parent commit SHAs"`
	Refs        []string `json:"refs,omitempty"         jsonschema:"branches and tags pointing at this commit"`
	Subject     string   `json:"subject"                jsonschema:"commit subject line"`
	Body        string   `json:"body,omitempty"         jsonschema:"commit body after the subject"`
}

func toCommit(c git.Commit) Commit {
	return Commit{
		SHA:         c.SHA,
		Short:       c.Short,
		Author:      c.Author,
		AuthorEmail: c.AuthorEmail,
		Date:        c.Date.UTC().Format(time.RFC3339),
		Parents:     c.Parents,
		Refs:        c.Decorations,
		Subject:     c.Subject,
		Body:        c.Body,
	}
}

func toCommits(commits []git.Commit) []Commit {
	result := make([]Commit, 0, len(commits))
	for _, c := range commits {
		result = append(result, toCommit(c))
	}
	return result
}

// Conflict names one path a merge-family operation could not auto-resolve.
type Conflict struct {
	Reason string `json:"reason" jsonschema:"conflict kind reported by git, such as content or modify/delete"`
	Path   string `json:"path"   jsonschema:"conflicted path"`
}

func toConflicts(conflicts []git.Conflict) []Conflict {
	result := make([]Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		result = append(result, Conflict{Reason: c.Reason, Path: c.Path})
	}
	return result
}

// DiffStat summarizes changed files and line counts.
type DiffStat struct {
	Files      int `json:"files"      jsonschema:"number of changed files"`
	Insertions int `json:"insertions" jsonschema:"inserted line count"`
	Deletions  int `json:"deletions"  jsonschema:"deleted line count"`
}

func toDiffStat(s git.DiffStat) DiffStat {
	return DiffStat{Files: s.Files, Insertions: s.Insertions, Deletions: s.Deletions}
}
