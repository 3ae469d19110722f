package git

import (
	"context"
)

// InitOptions controls repository creation.
type InitOptions struct {
	Bare bool
	// InitialBranch names the first branch instead of the git default.
	InitialBranch string
}

// InitResult reports where the repository was created.
type InitResult struct {
	Path string
	Bare bool
}

// Init creates a repository in the execution context's working directory.
// It is the one operation that does not require a repository to exist.
func (s *Service) Init(ctx context.Context, ec ExecutionContext, opts InitOptions) (InitResult, error) {
	args := []string{"init"}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.InitialBranch != "" {
		if err := validateRef("initial_branch", opts.InitialBranch); err != nil {
			return InitResult{}, s.reject(ec, "init", err)
		}
		args = append(args, "--initial-branch="+opts.InitialBranch)
	}

	if _, err := s.execute(ctx, ec, "init", false, args...); err != nil {
		return InitResult{}, err
	}

	s.invalidate(ec)
	return InitResult{Path: ec.WorkDir, Bare: opts.Bare}, nil
}
