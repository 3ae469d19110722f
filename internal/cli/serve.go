package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"gitwire.dev/gitwire/internal/cache"
	"gitwire.dev/gitwire/internal/config"
	"gitwire.dev/gitwire/internal/git"
	"gitwire.dev/gitwire/internal/gitmcp"
	"gitwire.dev/gitwire/internal/logging"
	"gitwire.dev/gitwire/internal/metrics"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(configPath *string, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run gitwire as a Model Context Protocol (MCP) server over stdio.

Agents call tools such as git_status, git_log, git_commit, and git_push;
gitwire runs the matching git subprocess and returns the parsed result.
Logs go to stderr so stdout stays clean for the transport.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "gitwire": {
        "command": "gitwire",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			logger, closeLogs, err := logging.New(logging.Options{
				Level:          cfg.Log.Level,
				Format:         cfg.Log.Format,
				File:           cfg.Log.File,
				FileMaxSizeMB:  cfg.Log.FileMaxSizeMB,
				FileMaxBackups: cfg.Log.FileMaxBackups,
				FileMaxAgeDays: cfg.Log.FileMaxAgeDays,
			})
			if err != nil {
				return err
			}
			defer func() { _ = closeLogs() }()

			runner := git.NewCommandRunner(git.RunnerConfig{
				GitPath:   cfg.Git.Path,
				Timeout:   cfg.Git.Timeout,
				MaxOutput: int(cfg.Git.MaxOutputBytes),
			})

			var store *cache.Cache
			if cfg.Cache.Enabled {
				store = cache.New(cfg.Cache.TTL)
			}

			svc := git.NewService(runner, logger, store, metrics.NewRecorder(),
				git.WithAllowedRoots(cfg.Workdir.AllowedRoots))

			logger.Info("serving MCP over stdio",
				"version", version,
				"tenant", cfg.Tenant,
				"git_path", cfg.Git.Path,
				"cache_enabled", cfg.Cache.Enabled,
				"allowed_roots", len(cfg.Workdir.AllowedRoots))

			server := gitmcp.NewServer(version, svc, cfg.Tenant)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
