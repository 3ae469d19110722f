package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"gitwire.dev/gitwire/internal/config"
	gitwireerrors "gitwire.dev/gitwire/internal/errors"
	"gitwire.dev/gitwire/internal/git"
	"gitwire.dev/gitwire/internal/metrics"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string
	Status  checkStatus
	Message string
	Hint    string
}

var (
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// newDoctorCmd creates the doctor command
func newDoctorCmd(configPath *string, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the gitwire environment and report problems",
		Long: `Run diagnostic checks on the gitwire environment.

The doctor command checks:
  - Configuration: config file, allowed working-directory roots
  - Environment: git binary presence and version
  - Repository: a live status probe from the current directory

Each check reports pass, warn, or fail. The command exits non-zero when
any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.Context(), cmd.OutOrStdout(), stdoutIsTTY(), *configPath, version)
		},
	}
}

// stdoutIsTTY reports whether stdout is attached to a terminal.
func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// runDoctor executes every check section and prints a summary. It returns an
// error when at least one check failed.
func runDoctor(ctx context.Context, out io.Writer, color bool, configPath, version string) error {
	fmt.Fprintf(out, "gitwire doctor %s\n", version)

	cfg, configResults := checkConfig(configPath)
	printSection(out, color, "Configuration", configResults)

	envResults := checkEnvironment(ctx, cfg)
	printSection(out, color, "Environment", envResults)

	repoResults := checkRepository(ctx, cfg)
	printSection(out, color, "Repository", repoResults)

	var passed, warned, failed int
	for _, section := range [][]checkResult{configResults, envResults, repoResults} {
		for _, check := range section {
			switch check.Status {
			case checkPass:
				passed++
			case checkWarn:
				warned++
			case checkFail:
				failed++
			}
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d warnings, %d failed\n", passed, warned, failed)
	if failed > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failed)
	}
	return nil
}

// checkConfig loads the configuration and reports on its source and the
// allowed working-directory roots. On a load failure the defaults are
// returned so the remaining sections can still run.
func checkConfig(configPath string) (*config.Config, []checkResult) {
	checks := make([]checkResult, 0, 3)

	cfg, err := config.Load(configPath)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Config",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    "fix the config file or unset the conflicting GITWIRE_* variables",
		})
		return config.Default(), checks
	}

	source := "built-in defaults"
	switch {
	case configPath != "":
		source = configPath
	default:
		if _, statErr := os.Stat(config.UserConfigPath()); statErr == nil {
			source = config.UserConfigPath()
		}
	}
	checks = append(checks, checkResult{
		Name:    "Config",
		Status:  checkPass,
		Message: "loaded from " + source,
	})

	if len(cfg.Workdir.AllowedRoots) == 0 {
		checks = append(checks, checkResult{
			Name:    "Workdir Roots",
			Status:  checkPass,
			Message: "any absolute working directory is allowed",
		})
		return cfg, checks
	}

	var missing []string
	for _, root := range cfg.Workdir.AllowedRoots {
		info, statErr := os.Stat(root)
		if statErr != nil || !info.IsDir() {
			missing = append(missing, root)
		}
	}
	if len(missing) > 0 {
		checks = append(checks, checkResult{
			Name:    "Workdir Roots",
			Status:  checkWarn,
			Message: fmt.Sprintf("%d of %d allowed roots do not exist: %s", len(missing), len(cfg.Workdir.AllowedRoots), strings.Join(missing, ", ")),
			Hint:    "create the directories or adjust workdir.allowed_roots",
		})
	} else {
		checks = append(checks, checkResult{
			Name:    "Workdir Roots",
			Status:  checkPass,
			Message: fmt.Sprintf("%d allowed root(s) exist", len(cfg.Workdir.AllowedRoots)),
		})
	}
	return cfg, checks
}

// checkEnvironment verifies the git binary resolves and runs.
func checkEnvironment(ctx context.Context, cfg *config.Config) []checkResult {
	checks := make([]checkResult, 0, 2)

	path, err := exec.LookPath(cfg.Git.Path)
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: fmt.Sprintf("%q not found", cfg.Git.Path),
			Hint:    "install git or set git.path in the config",
		})
		return checks
	}
	checks = append(checks, checkResult{
		Name:    "Git Binary",
		Status:  checkPass,
		Message: path,
	})

	output, err := exec.CommandContext(ctx, path, "version").Output()
	if err != nil {
		checks = append(checks, checkResult{
			Name:    "Git Version",
			Status:  checkFail,
			Message: fmt.Sprintf("%s version failed: %v", path, err),
		})
		return checks
	}
	checks = append(checks, checkResult{
		Name:    "Git Version",
		Status:  checkPass,
		Message: strings.TrimSpace(string(output)),
	})
	return checks
}

// checkRepository runs a live status probe from the current directory through
// the same runner, service, and classifier that serve uses, then reports what
// the metrics recorder captured.
func checkRepository(ctx context.Context, cfg *config.Config) []checkResult {
	workDir, err := os.Getwd()
	if err != nil {
		return []checkResult{{
			Name:    "Status Probe",
			Status:  checkWarn,
			Message: "could not determine the current directory: " + err.Error(),
		}}
	}

	runner := git.NewCommandRunner(git.RunnerConfig{
		GitPath:   cfg.Git.Path,
		Timeout:   cfg.Git.Timeout,
		MaxOutput: int(cfg.Git.MaxOutputBytes),
	})
	recorder := metrics.NewRecorder()
	svc := git.NewService(runner, slog.New(slog.DiscardHandler), nil, recorder,
		git.WithAllowedRoots(cfg.Workdir.AllowedRoots))

	checks := make([]checkResult, 0, 2)
	status, err := svc.Status(ctx, git.NewExecutionContext(workDir, cfg.Tenant))
	if err != nil {
		checks = append(checks, probeFailure(workDir, err))
	} else {
		target := status.Branch
		if status.Detached {
			target = "detached HEAD"
		}
		checks = append(checks, checkResult{
			Name:    "Status Probe",
			Status:  checkPass,
			Message: fmt.Sprintf("parsed status of %s in %s", target, workDir),
		})
	}

	stats := recorder.Snapshot()["status"]
	checks = append(checks, checkResult{
		Name:   "Metrics",
		Status: checkPass,
		Message: fmt.Sprintf("recorded %d call(s), %d failure(s), %s total",
			stats.Count, stats.Failures, stats.TotalDuration.Round(time.Millisecond)),
	})
	return checks
}

// probeFailure turns a classified probe error into a check result. Being
// outside a repository or outside the allowed roots is expected when doctor
// runs from an arbitrary directory, so those classify as warnings.
func probeFailure(workDir string, err error) checkResult {
	var classified *gitwireerrors.Error
	if errors.As(err, &classified) {
		switch classified.Category {
		case gitwireerrors.CategoryRepository:
			return checkResult{
				Name:    "Status Probe",
				Status:  checkWarn,
				Message: workDir + " is not inside a git repository",
				Hint:    "run doctor from a checkout to probe end to end",
			}
		case gitwireerrors.CategorySecurity:
			return checkResult{
				Name:    "Status Probe",
				Status:  checkWarn,
				Message: workDir + " is outside the allowed roots",
				Hint:    "run doctor from a directory under workdir.allowed_roots",
			}
		}
	}
	return checkResult{
		Name:    "Status Probe",
		Status:  checkFail,
		Message: err.Error(),
	}
}

// printSection prints one titled group of check results.
func printSection(out io.Writer, color bool, title string, checks []checkResult) {
	fmt.Fprintln(out)
	if color {
		fmt.Fprintln(out, sectionStyle.Render(title))
	} else {
		fmt.Fprintln(out, title)
	}

	for _, check := range checks {
		fmt.Fprintf(out, "  %s  %s: %s\n", statusIcon(check.Status, color), check.Name, check.Message)
		if check.Hint != "" {
			if color {
				fmt.Fprintf(out, "      %s\n", hintStyle.Render("-> "+check.Hint))
			} else {
				fmt.Fprintf(out, "      -> %s\n", check.Hint)
			}
		}
	}
}

// statusIcon returns the marker for a check status.
func statusIcon(status checkStatus, color bool) string {
	if !color {
		switch status {
		case checkPass:
			return "ok"
		case checkWarn:
			return "!!"
		default:
			return "XX"
		}
	}
	switch status {
	case checkPass:
		return passStyle.Render("ok")
	case checkWarn:
		return warnStyle.Render("!!")
	default:
		return failStyle.Render("XX")
	}
}
