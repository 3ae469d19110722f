package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// DefaultCommandTimeout is applied when the caller's context carries no
// deadline.
const DefaultCommandTimeout = 5 * time.Minute

// DefaultMaxOutput is the per-stream capture cap in bytes.
const DefaultMaxOutput = 10 << 20

// RawResult holds the captured output of one git invocation, trimmed of
// surrounding whitespace. It is transient; a parser consumes it immediately.
type RawResult struct {
	Stdout string
	Stderr string
}

// Runner abstracts subprocess execution so operations can be exercised
// against a mock in tests.
type Runner interface {
	Run(ctx context.Context, workDir string, args ...string) (RawResult, error)
}

// RunnerConfig controls how subprocesses are spawned and bounded.
type RunnerConfig struct {
	// GitPath is the executable to spawn. Empty means "git" resolved via PATH.
	GitPath string
	// Timeout bounds a command when the context has no deadline of its own.
	Timeout time.Duration
	// MaxOutput caps each captured stream in bytes.
	MaxOutput int
}

// CommandRunner executes git with a controlled environment and enforced
// output and time limits. It holds no per-call state and is safe for
// concurrent use.
type CommandRunner struct {
	gitPath   string
	timeout   time.Duration
	maxOutput int
}

// NewCommandRunner creates a CommandRunner, filling unset config fields with
// the package defaults.
func NewCommandRunner(cfg RunnerConfig) *CommandRunner {
	r := &CommandRunner{
		gitPath:   cfg.GitPath,
		timeout:   cfg.Timeout,
		maxOutput: cfg.MaxOutput,
	}
	if r.gitPath == "" {
		r.gitPath = "git"
	}
	if r.timeout <= 0 {
		r.timeout = DefaultCommandTimeout
	}
	if r.maxOutput <= 0 {
		r.maxOutput = DefaultMaxOutput
	}
	return r
}

// Run executes git with the given argument list in workDir. It returns the
// trimmed output, or a CommandError carrying the exit code and both streams.
// Cancelling the context kills the subprocess.
func (r *CommandRunner) Run(ctx context.Context, workDir string, args ...string) (RawResult, error) {
	if err := validateArgs(args); err != nil {
		return RawResult{}, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Env = commandEnv()
	// A hook or helper that inherited the output pipes must not block
	// reaping after the command itself is dead.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	var stdoutTruncated, stderrTruncated bool
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: r.maxOutput, truncated: &stdoutTruncated}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: r.maxOutput, truncated: &stderrTruncated}

	err := cmd.Run()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		// A killed subprocess reports "signal: killed"; the context error is
		// the one that matters for classification.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return RawResult{}, gitwireerrors.NewCommandError(r.gitPath, args, exitCode, stdout.String(), stderr.String(), err)
	}

	if stdoutTruncated || stderrTruncated {
		return RawResult{}, gitwireerrors.NewCommandError(r.gitPath, args, 0, stdout.String(), stderr.String(),
			gitwireerrors.ErrOutputLimitExceeded)
	}

	return RawResult{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}, nil
}

// limitedWriter collects up to limit bytes and discards the rest, flagging
// the overrun. Discarding instead of blocking keeps the subprocess's pipes
// drained so it can exit and be reaped.
type limitedWriter struct {
	buf       *bytes.Buffer
	limit     int
	truncated *bool
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remain := w.limit - w.buf.Len()
	if remain <= 0 {
		*w.truncated = true
		return len(p), nil
	}
	if len(p) <= remain {
		return w.buf.Write(p)
	}
	_, _ = w.buf.Write(p[:remain])
	*w.truncated = true
	return len(p), nil
}
