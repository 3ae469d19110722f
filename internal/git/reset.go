package git

import (
	"context"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// Reset modes.
const (
	ResetSoft  = "soft"
	ResetMixed = "mixed"
	ResetHard  = "hard"
)

// ResetOptions selects the reset target and how much state moves with it.
type ResetOptions struct {
	// Mode is soft, mixed, or hard; empty means git's default of mixed.
	Mode string
	Ref  string
}

// Reset moves HEAD to a ref, adjusting the index and working tree per mode.
func (s *Service) Reset(ctx context.Context, ec ExecutionContext, opts ResetOptions) error {
	switch opts.Mode {
	case "", ResetSoft, ResetMixed, ResetHard:
	default:
		return s.reject(ec, "reset", gitwireerrors.NewValidationError("mode", "must be soft, mixed, or hard"))
	}

	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	if err := validateRef("ref", ref); err != nil {
		return s.reject(ec, "reset", err)
	}

	args := []string{"reset"}
	if opts.Mode != "" {
		args = append(args, "--"+opts.Mode)
	}
	args = append(args, ref)

	if _, err := s.execute(ctx, ec, "reset", true, args...); err != nil {
		return err
	}
	s.invalidate(ec)
	return nil
}
