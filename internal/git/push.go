package git

import (
	"context"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// PushOptions selects what to push and where.
type PushOptions struct {
	Remote string
	Ref    string
	// SetUpstream records the pushed branch as the upstream of the current
	// branch.
	SetUpstream bool
	Force       bool
	// ForceWithLease force-pushes only when the remote ref still points
	// where the local tracking ref expects.
	ForceWithLease bool
	Tags           bool
	// Delete removes the ref from the remote instead of updating it.
	Delete bool
}

// Push uploads local refs to a remote.
func (s *Service) Push(ctx context.Context, ec ExecutionContext, opts PushOptions) error {
	if opts.Force && opts.ForceWithLease {
		return s.reject(ec, "push", gitwireerrors.NewValidationError("force", "cannot be combined with force_with_lease"))
	}
	if opts.Delete && opts.Ref == "" {
		return s.reject(ec, "push", gitwireerrors.NewValidationError("ref", "required when delete is set"))
	}

	args := []string{"push"}
	if opts.SetUpstream {
		args = append(args, "-u")
	}
	if opts.Force {
		args = append(args, "--force")
	}
	if opts.ForceWithLease {
		args = append(args, "--force-with-lease")
	}
	if opts.Tags {
		args = append(args, "--tags")
	}
	if opts.Delete {
		args = append(args, "--delete")
	}
	if opts.Remote != "" {
		if err := validateRef("remote", opts.Remote); err != nil {
			return s.reject(ec, "push", err)
		}
		args = append(args, opts.Remote)
		if opts.Ref != "" {
			if err := validateRef("ref", opts.Ref); err != nil {
				return s.reject(ec, "push", err)
			}
			args = append(args, opts.Ref)
		}
	}

	if _, err := s.execute(ctx, ec, "push", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
