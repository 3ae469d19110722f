package git

import (
	"context"
)

// FetchOptions selects which remote to fetch from.
type FetchOptions struct {
	Remote string
	// All fetches every configured remote.
	All bool
	// Prune removes remote-tracking refs that no longer exist upstream.
	Prune bool
	Tags  bool
}

// Fetch downloads refs and objects from a remote.
func (s *Service) Fetch(ctx context.Context, ec ExecutionContext, opts FetchOptions) error {
	args := []string{"fetch"}
	if opts.Prune {
		args = append(args, "--prune")
	}
	if opts.Tags {
		args = append(args, "--tags")
	}
	if opts.All {
		args = append(args, "--all")
	} else if opts.Remote != "" {
		if err := validateRef("remote", opts.Remote); err != nil {
			return s.reject(ec, "fetch", err)
		}
		args = append(args, opts.Remote)
	}

	if _, err := s.execute(ctx, ec, "fetch", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
