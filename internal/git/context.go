package git

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// ExecutionContext identifies one operation invocation: where it runs and on
// whose behalf. It is immutable for the duration of the call.
type ExecutionContext struct {
	// WorkDir is the absolute directory the command runs in.
	WorkDir string
	// RequestID correlates logs and errors for one invocation.
	RequestID string
	// TenantID identifies the logical caller. Informational; it never
	// changes command behavior.
	TenantID string
}

// NewExecutionContext builds a context for workDir with a fresh request id.
func NewExecutionContext(workDir, tenantID string) ExecutionContext {
	return ExecutionContext{
		WorkDir:   workDir,
		RequestID: uuid.NewString(),
		TenantID:  tenantID,
	}
}

// Validate checks that the context names a usable working directory. It does
// not require the directory to be a repository; Init legitimately runs in a
// plain directory.
func (ec ExecutionContext) Validate() error {
	if ec.WorkDir == "" {
		return gitwireerrors.NewValidationError("workDir", "must not be empty")
	}
	if !filepath.IsAbs(ec.WorkDir) {
		return gitwireerrors.NewValidationError("workDir", "must be an absolute path")
	}
	info, err := os.Stat(ec.WorkDir)
	if err != nil {
		return gitwireerrors.NewValidationError("workDir", "does not exist")
	}
	if !info.IsDir() {
		return gitwireerrors.NewValidationError("workDir", "is not a directory")
	}
	return nil
}
