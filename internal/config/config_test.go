package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, "git", cfg.Git.Path)
	require.Equal(t, 5*time.Minute, cfg.Git.Timeout)
	require.Equal(t, int64(10<<20), cfg.Git.MaxOutputBytes)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, 5*time.Second, cfg.Cache.TTL)
	require.Empty(t, cfg.Workdir.AllowedRoots)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoad(t *testing.T) {
	t.Run("without a config file the defaults apply", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := Load("")

		require.NoError(t, err)
		defaults := Default()
		require.Equal(t, defaults.Git, cfg.Git)
		require.Equal(t, defaults.Cache, cfg.Cache)
		require.Equal(t, defaults.Log, cfg.Log)
		require.Empty(t, cfg.Workdir.AllowedRoots)
		require.Empty(t, cfg.Tenant)
	})

	t.Run("a config file overrides the defaults", func(t *testing.T) {
		path := writeConfig(t, `
tenant: acme
git:
  path: /usr/local/bin/git
  timeout: 90s
cache:
  ttl: 30s
workdir:
  allowed_roots:
    - /srv/repos
    - /home/ci
log:
  level: debug
  format: json
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "acme", cfg.Tenant)
		require.Equal(t, "/usr/local/bin/git", cfg.Git.Path)
		require.Equal(t, 90*time.Second, cfg.Git.Timeout)
		require.Equal(t, []string{"/srv/repos", "/home/ci"}, cfg.Workdir.AllowedRoots)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
		// Settings the file does not mention keep their defaults.
		require.Equal(t, int64(10<<20), cfg.Git.MaxOutputBytes)
		require.True(t, cfg.Cache.Enabled)
		require.Equal(t, 30*time.Second, cfg.Cache.TTL)
	})

	t.Run("environment variables override the file", func(t *testing.T) {
		path := writeConfig(t, "git:\n  path: /opt/git\n")
		t.Setenv("GITWIRE_GIT_PATH", "/env/git")
		t.Setenv("GITWIRE_GIT_TIMEOUT", "45s")
		t.Setenv("GITWIRE_LOG_LEVEL", "warn")
		t.Setenv("GITWIRE_TENANT", "ci-fleet")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "/env/git", cfg.Git.Path)
		require.Equal(t, 45*time.Second, cfg.Git.Timeout)
		require.Equal(t, "warn", cfg.Log.Level)
		require.Equal(t, "ci-fleet", cfg.Tenant)
	})

	t.Run("allowed roots parse from a comma separated variable", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("GITWIRE_WORKDIR_ALLOWED_ROOTS", "/srv/repos,/var/checkout")

		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, []string{"/srv/repos", "/var/checkout"}, cfg.Workdir.AllowedRoots)
	})

	t.Run("an explicit path that does not exist is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		requireConfigError(t, err)
	})

	t.Run("an invalid setting surfaces as a configuration error", func(t *testing.T) {
		path := writeConfig(t, "log:\n  format: xml\n")

		_, err := Load(path)

		requireConfigError(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{name: "empty git path", mutate: func(cfg *Config) { cfg.Git.Path = "" }},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.Git.Timeout = 0 }},
		{name: "negative output cap", mutate: func(cfg *Config) { cfg.Git.MaxOutputBytes = -1 }},
		{name: "enabled cache without a ttl", mutate: func(cfg *Config) { cfg.Cache.TTL = 0 }},
		{name: "relative allowed root", mutate: func(cfg *Config) { cfg.Workdir.AllowedRoots = []string{"repos"} }},
		{name: "unknown log level", mutate: func(cfg *Config) { cfg.Log.Level = "chatty" }},
		{name: "unknown log format", mutate: func(cfg *Config) { cfg.Log.Format = "logfmt" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			requireConfigError(t, cfg.Validate())
		})
	}

	t.Run("a disabled cache does not need a ttl", func(t *testing.T) {
		cfg := Default()
		cfg.Cache.Enabled = false
		cfg.Cache.TTL = 0

		require.NoError(t, cfg.Validate())
	})
}

func TestUserConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	require.Equal(t, filepath.Join("/custom/config", "gitwire", "config.yaml"), UserConfigPath())
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()
	var classified *gitwireerrors.Error
	require.ErrorAs(t, err, &classified)
	require.Equal(t, gitwireerrors.CategoryConfiguration, classified.Category)
	require.False(t, classified.Retryable())
}
