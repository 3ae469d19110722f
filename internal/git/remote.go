package git

import (
	"context"
	"strings"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// Remote is one configured remote with its fetch and push URLs.
type Remote struct {
	Name     string
	FetchURL string
	PushURL  string
}

// RemoteListResult lists remotes in the order git reports them.
type RemoteListResult struct {
	Remotes []Remote
}

// RemoteAddOptions names the remote to add.
type RemoteAddOptions struct {
	Name string
	URL  string
}

// RemoteRemoveOptions names the remote to remove.
type RemoteRemoveOptions struct {
	Name string
}

// ListRemotes lists configured remotes.
func (s *Service) ListRemotes(ctx context.Context, ec ExecutionContext) (RemoteListResult, error) {
	args := []string{"remote", "-v"}
	return cachedRead(ctx, s, ec, "remote_list", args, func(raw RawResult) RemoteListResult {
		return RemoteListResult{Remotes: parseRemotes(raw.Stdout)}
	})
}

// AddRemote adds a remote.
func (s *Service) AddRemote(ctx context.Context, ec ExecutionContext, opts RemoteAddOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "remote_add", err)
	}
	if opts.URL == "" {
		return s.reject(ec, "remote_add", gitwireerrors.NewValidationError("url", "must not be empty"))
	}
	if strings.HasPrefix(opts.URL, "-") {
		return s.reject(ec, "remote_add", gitwireerrors.NewValidationError("url", "must not start with a dash"))
	}

	if _, err := s.execute(ctx, ec, "remote_add", true, "remote", "add", opts.Name, opts.URL); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// RemoveRemote removes a remote and its tracking refs.
func (s *Service) RemoveRemote(ctx context.Context, ec ExecutionContext, opts RemoteRemoveOptions) error {
	if err := validateRef("name", opts.Name); err != nil {
		return s.reject(ec, "remote_remove", err)
	}

	if _, err := s.execute(ctx, ec, "remote_remove", true, "remote", "remove", opts.Name); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}

// parseRemotes pairs the "(fetch)" and "(push)" lines of "git remote -v"
// into one Remote per name, keeping first-seen order.
func parseRemotes(out string) []Remote {
	remotes := []Remote{}
	index := map[string]int{}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, rest, found := strings.Cut(line, "\t")
		if !found {
			continue
		}

		i, seen := index[name]
		if !seen {
			remotes = append(remotes, Remote{Name: name})
			i = len(remotes) - 1
			index[name] = i
		}
		switch {
		case strings.HasSuffix(rest, " (fetch)"):
			remotes[i].FetchURL = strings.TrimSuffix(rest, " (fetch)")
		case strings.HasSuffix(rest, " (push)"):
			remotes[i].PushURL = strings.TrimSuffix(rest, " (push)")
		}
	}
	return remotes
}
