// Package cli assembles the gitwire commands: serve runs the MCP stdio
// server, doctor checks the environment, version prints build information.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitwire.dev/gitwire/internal/config"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gitwire",
		Short: "Gitwire runs git for agents and returns typed, parsed results",
		Long: `Gitwire wraps the git command line in an execution and parsing layer
and exposes every operation as a Model Context Protocol tool.

Each tool call builds an explicit argument list, runs git as a bounded
subprocess, parses the machine-readable output into typed data, and
classifies failures into stable categories with recovery guidance.`,
		Version:      buildVersion(version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default "+config.UserConfigPath()+")")

	rootCmd.AddCommand(newServeCmd(&configPath, version))
	rootCmd.AddCommand(newDoctorCmd(&configPath, version))
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// buildVersion folds the commit and build date into the version string when
// they were stamped in via ldflags.
func buildVersion(version, commit, date string) string {
	if commit == "none" && date == "unknown" {
		return version
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, short, date)
}
