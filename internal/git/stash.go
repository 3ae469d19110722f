package git

import (
	"context"
	"fmt"
	"strings"
)

// StashEntry is one saved stash.
type StashEntry struct {
	// Index is the position in the stash stack, 0 being the most recent.
	Index    int
	Selector string
	Branch   string
	Message  string
}

// StashListResult lists stashes newest first.
type StashListResult struct {
	Entries []StashEntry
}

// StashPushOptions controls what gets stashed.
type StashPushOptions struct {
	Message          string
	IncludeUntracked bool
	// KeepIndex stashes the changes but leaves the index as staged.
	KeepIndex bool
	Paths     []string
}

// StashRefOptions selects a stash by stack position.
type StashRefOptions struct {
	Index int
}

// StashApplyResult reports the outcome of applying a stash. A conflict stop
// is reported through Conflicts rather than as an error; on a conflicted
// pop the entry stays on the stack.
type StashApplyResult struct {
	Applied   bool
	Conflicts []Conflict
}

// ListStashes lists the stash stack.
func (s *Service) ListStashes(ctx context.Context, ec ExecutionContext) (StashListResult, error) {
	args := []string{"stash", "list"}
	return cachedRead(ctx, s, ec, "stash_list", args, func(raw RawResult) StashListResult {
		return StashListResult{Entries: parseStashes(raw.Stdout)}
	})
}

// StashPush saves local changes onto the stash stack.
func (s *Service) StashPush(ctx context.Context, ec ExecutionContext, opts StashPushOptions) error {
	if err := validatePaths("paths", opts.Paths); err != nil {
		return s.reject(ec, "stash_push", err)
	}

	args := []string{"stash", "push"}
	if opts.IncludeUntracked {
		args = append(args, "--include-untracked")
	}
	if opts.KeepIndex {
		args = append(args, "--keep-index")
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}

	if _, err := s.execute(ctx, ec, "stash_push", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// StashPop applies a stash and drops it from the stack on success.
func (s *Service) StashPop(ctx context.Context, ec ExecutionContext, opts StashRefOptions) (StashApplyResult, error) {
	return s.applyStash(ctx, ec, "stash_pop", "pop", opts)
}

// StashApply applies a stash and keeps it on the stack.
func (s *Service) StashApply(ctx context.Context, ec ExecutionContext, opts StashRefOptions) (StashApplyResult, error) {
	return s.applyStash(ctx, ec, "stash_apply", "apply", opts)
}

// StashDrop removes a stash from the stack without applying it.
func (s *Service) StashDrop(ctx context.Context, ec ExecutionContext, opts StashRefOptions) error {
	if _, err := s.execute(ctx, ec, "stash_drop", true, "stash", "drop", stashSelector(opts.Index)); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

func (s *Service) applyStash(ctx context.Context, ec ExecutionContext, op, subcommand string, opts StashRefOptions) (StashApplyResult, error) {
	args := []string{"stash", subcommand, stashSelector(opts.Index)}
	if _, err := s.execute(ctx, ec, op, true, args...); err != nil {
		if conflicts := conflictsFrom(err); len(conflicts) > 0 {
			s.invalidate(ec)
			return StashApplyResult{Conflicts: conflicts}, nil
		}
		return StashApplyResult{}, err
	}

	s.invalidate(ec)
	return StashApplyResult{Applied: true, Conflicts: []Conflict{}}, nil
}

func stashSelector(index int) string {
	if index < 0 {
		index = 0
	}
	return fmt.Sprintf("stash@{%d}", index)
}

// parseStashes reads "stash@{N}: On <branch>: <message>" lines; entries made
// by plain "git stash" read "WIP on <branch>: <sha> <subject>" instead.
func parseStashes(out string) []StashEntry {
	entries := []StashEntry{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		selector, rest, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		entry := StashEntry{
			Selector: selector,
			Index:    parseSelectorIndex(selector),
			Message:  rest,
		}
		if tail, ok := strings.CutPrefix(rest, "WIP on "); ok {
			entry.Branch, entry.Message = splitStashBranch(tail)
		} else if tail, ok := strings.CutPrefix(rest, "On "); ok {
			entry.Branch, entry.Message = splitStashBranch(tail)
		}
		entries = append(entries, entry)
	}
	return entries
}

func splitStashBranch(tail string) (string, string) {
	branch, message, found := strings.Cut(tail, ": ")
	if !found {
		return tail, ""
	}
	return branch, message
}
