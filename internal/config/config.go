// Package config loads gitwire settings from defaults, an optional YAML
// file, and GITWIRE_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// Config holds every runtime setting for gitwire.
type Config struct {
	// Tenant labels all operations issued by this process. Informational.
	Tenant  string        `mapstructure:"tenant"`
	Git     GitConfig     `mapstructure:"git"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Workdir WorkdirConfig `mapstructure:"workdir"`
	Log     LogConfig     `mapstructure:"log"`
}

// GitConfig controls how git subprocesses are spawned.
type GitConfig struct {
	// Path is the git executable, resolved through PATH when not absolute.
	Path string `mapstructure:"path"`
	// Timeout bounds each command when the caller supplies no deadline.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxOutputBytes caps each of stdout and stderr per command.
	MaxOutputBytes int64 `mapstructure:"max_output_bytes"`
}

// CacheConfig controls the read-result cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// WorkdirConfig restricts where operations may run.
type WorkdirConfig struct {
	// AllowedRoots lists absolute directories under which working
	// directories must live. Empty permits any absolute path.
	AllowedRoots []string `mapstructure:"allowed_roots"`
}

// LogConfig controls the console and file log handlers.
type LogConfig struct {
	// Level gates the console handler: debug, info, warn, or error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
	// File enables rotating file logging when non-empty.
	File           string `mapstructure:"file"`
	FileMaxSizeMB  int    `mapstructure:"file_max_size_mb"`
	FileMaxBackups int    `mapstructure:"file_max_backups"`
	FileMaxAgeDays int    `mapstructure:"file_max_age_days"`
}

// Load reads configuration with precedence defaults < file < environment.
// When path is empty the user config file is searched for in
// $XDG_CONFIG_HOME/gitwire and ~/.config/gitwire and is optional; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, configError("reading config file %s: %v", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(userConfigDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, configError("reading user config: %v", err)
			}
		}
	}

	v.SetEnvPrefix("GITWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, configError("unmarshaling config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded settings and reports the first problem as a
// configuration error.
func (c *Config) Validate() error {
	if c.Git.Path == "" {
		return configError("git.path must not be empty")
	}
	if c.Git.Timeout <= 0 {
		return configError("git.timeout must be positive, got %s", c.Git.Timeout)
	}
	if c.Git.MaxOutputBytes <= 0 {
		return configError("git.max_output_bytes must be positive, got %d", c.Git.MaxOutputBytes)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return configError("cache.ttl must be positive when the cache is enabled, got %s", c.Cache.TTL)
	}
	for _, root := range c.Workdir.AllowedRoots {
		if !filepath.IsAbs(root) {
			return configError("workdir.allowed_roots entries must be absolute paths, got %q", root)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return configError("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return configError("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Path:           "git",
			Timeout:        5 * time.Minute,
			MaxOutputBytes: 10 << 20,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Second,
		},
		Log: LogConfig{
			Level:          "info",
			Format:         "text",
			FileMaxSizeMB:  10,
			FileMaxBackups: 3,
			FileMaxAgeDays: 30,
		},
	}
}

// UserConfigPath returns where the user config file is expected.
func UserConfigPath() string {
	return filepath.Join(userConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("tenant", d.Tenant)

	v.SetDefault("git.path", d.Git.Path)
	v.SetDefault("git.timeout", d.Git.Timeout.String())
	v.SetDefault("git.max_output_bytes", d.Git.MaxOutputBytes)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL.String())

	v.SetDefault("workdir.allowed_roots", []string{})

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.file_max_size_mb", d.Log.FileMaxSizeMB)
	v.SetDefault("log.file_max_backups", d.Log.FileMaxBackups)
	v.SetDefault("log.file_max_age_days", d.Log.FileMaxAgeDays)
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitwire")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "gitwire")
	}
	return filepath.Join(home, ".config", "gitwire")
}

func configError(format string, args ...any) *gitwireerrors.Error {
	return gitwireerrors.New(gitwireerrors.CategoryConfiguration, gitwireerrors.SeverityHigh,
		fmt.Sprintf(format, args...))
}
