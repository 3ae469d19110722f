package git

import (
	"context"
	"strconv"
	"strings"
)

// RenamedFile records a staged rename or copy detected by status.
type RenamedFile struct {
	Path     string
	OrigPath string
	Score    string
}

// StatusResult describes the state of a working tree. A detached HEAD is
// reported with an empty Branch and Detached set; Branch never carries a
// placeholder value.
type StatusResult struct {
	Branch   string
	Detached bool
	Upstream string
	Ahead    int
	Behind   int
	Commit   string

	StagedAdded      []string
	StagedModified   []string
	StagedDeleted    []string
	UnstagedModified []string
	UnstagedDeleted  []string
	Renamed          []RenamedFile
	Untracked        []string
	Ignored          []string
	Conflicted       []string
}

// Clean reports whether the working tree has no changes of any kind.
func (r StatusResult) Clean() bool {
	return len(r.StagedAdded) == 0 &&
		len(r.StagedModified) == 0 &&
		len(r.StagedDeleted) == 0 &&
		len(r.UnstagedModified) == 0 &&
		len(r.UnstagedDeleted) == 0 &&
		len(r.Renamed) == 0 &&
		len(r.Untracked) == 0 &&
		len(r.Conflicted) == 0
}

// Status reports the working tree state.
func (s *Service) Status(ctx context.Context, ec ExecutionContext) (StatusResult, error) {
	args := []string{"status", "--porcelain=v2", "--branch", "--untracked-files=all"}
	return cachedRead(ctx, s, ec, "status", args, parseStatus)
}

// parseStatus reads the porcelain v2 format: "#" header lines, "1" ordinary
// entries, "2" renames, "u" unmerged entries, and "?"/"!" listings. Entries
// are classified by the fixed XY columns, where X is the staged side, Y the
// unstaged side, and "." means unmodified. Unknown record types are skipped
// so newer git versions cannot break the parse.
func parseStatus(raw RawResult) StatusResult {
	result := StatusResult{
		StagedAdded:      []string{},
		StagedModified:   []string{},
		StagedDeleted:    []string{},
		UnstagedModified: []string{},
		UnstagedDeleted:  []string{},
		Renamed:          []RenamedFile{},
		Untracked:        []string{},
		Ignored:          []string{},
		Conflicted:       []string{},
	}

	for _, line := range strings.Split(raw.Stdout, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "# "):
			parseStatusHeader(line, &result)
		case strings.HasPrefix(line, "1 "):
			parseStatusOrdinary(line, &result)
		case strings.HasPrefix(line, "2 "):
			parseStatusRename(line, &result)
		case strings.HasPrefix(line, "u "):
			// u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			if fields := strings.SplitN(line, " ", 11); len(fields) == 11 {
				result.Conflicted = append(result.Conflicted, fields[10])
			}
		case strings.HasPrefix(line, "? "):
			result.Untracked = append(result.Untracked, line[2:])
		case strings.HasPrefix(line, "! "):
			result.Ignored = append(result.Ignored, line[2:])
		}
	}
	return result
}

func parseStatusHeader(line string, result *StatusResult) {
	rest := strings.TrimPrefix(line, "# ")
	key, value, ok := strings.Cut(rest, " ")
	if !ok {
		return
	}
	switch key {
	case "branch.oid":
		if value != "(initial)" {
			result.Commit = value
		}
	case "branch.head":
		if value == "(detached)" {
			result.Detached = true
		} else {
			result.Branch = value
		}
	case "branch.upstream":
		result.Upstream = value
	case "branch.ab":
		for _, part := range strings.Fields(value) {
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "+")); err == nil && strings.HasPrefix(part, "+") {
				result.Ahead = n
			}
			if n, err := strconv.Atoi(strings.TrimPrefix(part, "-")); err == nil && strings.HasPrefix(part, "-") {
				result.Behind = n
			}
		}
	}
}

func parseStatusOrdinary(line string, result *StatusResult) {
	// 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
	fields := strings.SplitN(line, " ", 9)
	if len(fields) != 9 {
		return
	}
	xy, path := fields[1], fields[8]
	if len(xy) != 2 {
		return
	}
	classifyStaged(xy[0], path, result)
	classifyUnstaged(xy[1], path, result)
}

func parseStatusRename(line string, result *StatusResult) {
	// 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>\t<origPath>
	fields := strings.SplitN(line, " ", 10)
	if len(fields) != 10 {
		return
	}
	xy, score, pathPart := fields[1], fields[8], fields[9]
	path, origPath, _ := strings.Cut(pathPart, "\t")
	result.Renamed = append(result.Renamed, RenamedFile{
		Path:     path,
		OrigPath: origPath,
		Score:    score,
	})
	if len(xy) == 2 {
		classifyUnstaged(xy[1], path, result)
	}
}

func classifyStaged(code byte, path string, result *StatusResult) {
	switch code {
	case 'A':
		result.StagedAdded = append(result.StagedAdded, path)
	case 'M', 'T':
		result.StagedModified = append(result.StagedModified, path)
	case 'D':
		result.StagedDeleted = append(result.StagedDeleted, path)
	}
}

func classifyUnstaged(code byte, path string, result *StatusResult) {
	switch code {
	case 'M', 'T', 'A':
		result.UnstagedModified = append(result.UnstagedModified, path)
	case 'D':
		result.UnstagedDeleted = append(result.UnstagedDeleted, path)
	}
}
