package git

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"gitwire.dev/gitwire/internal/cache"
	gitwireerrors "gitwire.dev/gitwire/internal/errors"
	"gitwire.dev/gitwire/internal/metrics"
)

// Operations is the capability surface for git operations: one method per
// supported operation. Service is the production implementation; tests and
// other layers may substitute their own.
type Operations interface {
	// Repository
	Init(ctx context.Context, ec ExecutionContext, opts InitOptions) (InitResult, error)
	Status(ctx context.Context, ec ExecutionContext) (StatusResult, error)

	// History
	Log(ctx context.Context, ec ExecutionContext, opts LogOptions) (LogResult, error)
	Show(ctx context.Context, ec ExecutionContext, opts ShowOptions) (ShowResult, error)
	Blame(ctx context.Context, ec ExecutionContext, opts BlameOptions) (BlameResult, error)
	Reflog(ctx context.Context, ec ExecutionContext, opts ReflogOptions) (ReflogResult, error)

	// Working tree
	Stage(ctx context.Context, ec ExecutionContext, opts StageOptions) error
	Unstage(ctx context.Context, ec ExecutionContext, opts UnstageOptions) error
	Commit(ctx context.Context, ec ExecutionContext, opts CommitOptions) (CommitResult, error)
	Diff(ctx context.Context, ec ExecutionContext, opts DiffOptions) (DiffResult, error)
	Reset(ctx context.Context, ec ExecutionContext, opts ResetOptions) error
	Clean(ctx context.Context, ec ExecutionContext, opts CleanOptions) (CleanResult, error)

	// Branches
	ListBranches(ctx context.Context, ec ExecutionContext, opts BranchListOptions) (BranchListResult, error)
	CreateBranch(ctx context.Context, ec ExecutionContext, opts BranchCreateOptions) error
	DeleteBranch(ctx context.Context, ec ExecutionContext, opts BranchDeleteOptions) error
	Checkout(ctx context.Context, ec ExecutionContext, opts CheckoutOptions) error

	// Merging
	Merge(ctx context.Context, ec ExecutionContext, opts MergeOptions) (MergeResult, error)
	AbortMerge(ctx context.Context, ec ExecutionContext) error
	CherryPick(ctx context.Context, ec ExecutionContext, opts CherryPickOptions) (CherryPickResult, error)
	AbortCherryPick(ctx context.Context, ec ExecutionContext) error
	Rebase(ctx context.Context, ec ExecutionContext, opts RebaseOptions) (RebaseResult, error)
	ContinueRebase(ctx context.Context, ec ExecutionContext) (RebaseResult, error)
	AbortRebase(ctx context.Context, ec ExecutionContext) error

	// Stashes
	ListStashes(ctx context.Context, ec ExecutionContext) (StashListResult, error)
	StashPush(ctx context.Context, ec ExecutionContext, opts StashPushOptions) error
	StashPop(ctx context.Context, ec ExecutionContext, opts StashRefOptions) (StashApplyResult, error)
	StashApply(ctx context.Context, ec ExecutionContext, opts StashRefOptions) (StashApplyResult, error)
	StashDrop(ctx context.Context, ec ExecutionContext, opts StashRefOptions) error

	// Tags
	ListTags(ctx context.Context, ec ExecutionContext, opts TagListOptions) (TagListResult, error)
	CreateTag(ctx context.Context, ec ExecutionContext, opts TagCreateOptions) error
	DeleteTag(ctx context.Context, ec ExecutionContext, opts TagDeleteOptions) error

	// Remotes
	ListRemotes(ctx context.Context, ec ExecutionContext) (RemoteListResult, error)
	AddRemote(ctx context.Context, ec ExecutionContext, opts RemoteAddOptions) error
	RemoveRemote(ctx context.Context, ec ExecutionContext, opts RemoteRemoveOptions) error
	Fetch(ctx context.Context, ec ExecutionContext, opts FetchOptions) error
	Pull(ctx context.Context, ec ExecutionContext, opts PullOptions) (PullResult, error)
	Push(ctx context.Context, ec ExecutionContext, opts PushOptions) error

	// Worktrees
	ListWorktrees(ctx context.Context, ec ExecutionContext) (WorktreeListResult, error)
	AddWorktree(ctx context.Context, ec ExecutionContext, opts WorktreeAddOptions) error
	RemoveWorktree(ctx context.Context, ec ExecutionContext, opts WorktreeRemoveOptions) error
	PruneWorktrees(ctx context.Context, ec ExecutionContext) error
}

// Service composes the argument encoders, the runner, the parsers, and the
// classifier into the Operations surface. Read results are served from the
// cache when one is attached; successful writes invalidate the working
// directory's cached entries.
type Service struct {
	runner       Runner
	logger       *slog.Logger
	cache        *cache.Cache
	recorder     *metrics.Recorder
	allowedRoots []string
}

var _ Operations = (*Service)(nil)

// ServiceOption customizes a Service at construction time.
type ServiceOption func(*Service)

// WithAllowedRoots restricts working directories to the given absolute roots
// and their descendants. An empty list permits any absolute path.
func WithAllowedRoots(roots []string) ServiceOption {
	return func(s *Service) {
		for _, root := range roots {
			if root == "" {
				continue
			}
			s.allowedRoots = append(s.allowedRoots, filepath.Clean(root))
		}
	}
}

// NewService creates a Service. cache and recorder may be nil to disable
// caching and metrics; a nil logger falls back to slog.Default().
func NewService(runner Runner, logger *slog.Logger, c *cache.Cache, recorder *metrics.Recorder, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		runner:   runner,
		logger:   logger,
		cache:    c,
		recorder: recorder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// execute runs one git command for the named operation: validate the
// execution context, optionally require a repository, spawn, classify any
// failure, and record logs and metrics. Every failure leaves here as a
// classified *errors.Error.
func (s *Service) execute(ctx context.Context, ec ExecutionContext, op string, requireRepo bool, args ...string) (RawResult, error) {
	start := time.Now()
	raw, err := s.executeInner(ctx, ec, requireRepo, args)

	category := ""
	var classified *gitwireerrors.Error
	if err != nil {
		classified = gitwireerrors.Classify(err)
		category = string(classified.Category)
	}
	if s.recorder != nil {
		s.recorder.Observe(op, time.Since(start), category)
	}

	if classified != nil {
		s.logger.Warn("git operation failed",
			"op", op,
			"category", category,
			"severity", string(classified.Severity),
			"request_id", ec.RequestID,
			"tenant_id", ec.TenantID,
			"error", classified.Message)
		return RawResult{}, classified
	}

	s.logger.Debug("git operation succeeded",
		"op", op,
		"cmd", displayArgs(args),
		"request_id", ec.RequestID,
		"tenant_id", ec.TenantID,
		"duration", time.Since(start))
	return raw, nil
}

func (s *Service) executeInner(ctx context.Context, ec ExecutionContext, requireRepo bool, args []string) (RawResult, error) {
	if err := ec.Validate(); err != nil {
		return RawResult{}, err
	}
	if err := s.allowWorkDir(ec.WorkDir); err != nil {
		return RawResult{}, err
	}
	if requireRepo {
		if _, err := DiscoverRepository(ec.WorkDir); err != nil {
			return RawResult{}, err
		}
	}
	return s.runner.Run(ctx, ec.WorkDir, args...)
}

// allowWorkDir enforces the configured root allowlist. The working directory
// is already known to be absolute when this runs.
func (s *Service) allowWorkDir(workDir string) error {
	if len(s.allowedRoots) == 0 {
		return nil
	}
	cleaned := filepath.Clean(workDir)
	for _, root := range s.allowedRoots {
		if cleaned == root || strings.HasPrefix(cleaned, root+string(filepath.Separator)) {
			return nil
		}
	}
	return gitwireerrors.New(gitwireerrors.CategorySecurity, gitwireerrors.SeverityHigh,
		"working directory is outside the allowed roots")
}

// reject classifies an input validation failure for the named operation and
// records it the same way an execution failure would be.
func (s *Service) reject(ec ExecutionContext, op string, err error) *gitwireerrors.Error {
	classified := gitwireerrors.Classify(err)
	if s.recorder != nil {
		s.recorder.Observe(op, 0, string(classified.Category))
	}
	s.logger.Warn("git operation rejected",
		"op", op,
		"category", string(classified.Category),
		"request_id", ec.RequestID,
		"tenant_id", ec.TenantID,
		"error", classified.Message)
	return classified
}

// invalidate drops cached reads for the working directory after a successful
// write.
func (s *Service) invalidate(ec ExecutionContext) {
	if s.cache != nil {
		s.cache.Invalidate(ec.WorkDir)
	}
}

// cachedRead serves a read operation from the cache when possible, otherwise
// executes it and caches the parsed result. Parsers are total functions, so
// the only failures are execution failures.
func cachedRead[T any](ctx context.Context, s *Service, ec ExecutionContext, op string, args []string, parse func(RawResult) T) (T, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(ec.WorkDir, args); ok {
			if typed, ok := v.(T); ok {
				s.logger.Debug("cache hit", "op", op, "request_id", ec.RequestID)
				return typed, nil
			}
		}
	}

	raw, err := s.execute(ctx, ec, op, true, args...)
	if err != nil {
		var zero T
		return zero, err
	}

	result := parse(raw)
	if s.cache != nil {
		s.cache.Put(ec.WorkDir, args, result)
	}
	return result, nil
}
