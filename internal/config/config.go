// Package config provides configuration handling for gitink.
//
// Values are layered with the following precedence, lowest first:
//
//  1. Built-in defaults
//  2. TOML config file (gitink.toml, or --config)
//  3. Environment variables (GITINK_*)
//  4. Command-line flags
//
// Finalize validates the merged result and derives the remaining paths.
package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"gitink/internal/errors"
	"gitink/internal/pattern"
)

const (
	// DefaultJournalPath is the journal file location, relative to the repository.
	DefaultJournalPath = "ink.log"

	// DefaultCommitPrefix for commit messages.
	DefaultCommitPrefix = "[gitink]"

	// DefaultMaxAttempts bounds lock-contention retries per git operation.
	DefaultMaxAttempts = 5

	// DefaultRetryDelay between lock-retry attempts.
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultConfigFile is looked up in the working directory when no
	// --config flag is given.
	DefaultConfigFile = "gitink.toml"
)

// Config holds all gitink application settings.
type Config struct {
	// Repository and journal
	RepoPath     string
	JournalPath  string
	CommitPrefix string

	// Pattern schedule
	EpochDate string // YYYY-MM-DD; empty means the built-in epoch

	// Retry and pacing
	MaxAttempts int
	RetryDelay  time.Duration
	CommitDelay time.Duration
	DayDelay    time.Duration

	// Remote
	Remote   string
	AutoPush bool

	// User experience
	Verbose        bool
	NonInteractive bool

	// Debugging
	Debug   bool
	LogFile string

	// Build metadata
	VersionInfo VersionInfo

	epoch time.Time
}

// VersionInfo contains build-time version metadata.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		JournalPath:  DefaultJournalPath,
		CommitPrefix: DefaultCommitPrefix,
		MaxAttempts:  DefaultMaxAttempts,
		RetryDelay:   DefaultRetryDelay,
		Remote:       "origin",
		Verbose:      true,

		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// fileConfig maps gitink.toml keys onto Config fields.
type fileConfig struct {
	Repo         string `toml:"repo"`
	Journal      string `toml:"journal"`
	CommitPrefix string `toml:"commit_prefix"`
	Epoch        string `toml:"epoch"`
	MaxAttempts  int    `toml:"max_attempts"`
	RetryDelay   string `toml:"retry_delay"`
	CommitDelay  string `toml:"commit_delay"`
	DayDelay     string `toml:"day_delay"`
	Remote       string `toml:"remote"`
	AutoPush     bool   `toml:"auto_push"`
	Verbose      bool   `toml:"verbose"`
	Debug        bool   `toml:"debug"`
	LogFile      string `toml:"log_file"`
}

// LoadFile overlays values from a TOML config file. Only keys present in
// the file override the current values.
func (c *Config) LoadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return errors.NewConfigError("config file", path,
			errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
	}

	if meta.IsDefined("repo") {
		c.RepoPath = strings.TrimSpace(raw.Repo)
	}
	if meta.IsDefined("journal") {
		c.JournalPath = strings.TrimSpace(raw.Journal)
	}
	if meta.IsDefined("commit_prefix") {
		c.CommitPrefix = raw.CommitPrefix
	}
	if meta.IsDefined("epoch") {
		c.EpochDate = strings.TrimSpace(raw.Epoch)
	}
	if meta.IsDefined("max_attempts") {
		c.MaxAttempts = raw.MaxAttempts
	}
	if meta.IsDefined("remote") {
		c.Remote = strings.TrimSpace(raw.Remote)
	}
	if meta.IsDefined("auto_push") {
		c.AutoPush = raw.AutoPush
	}
	if meta.IsDefined("verbose") {
		c.Verbose = raw.Verbose
	}
	if meta.IsDefined("debug") {
		c.Debug = raw.Debug
	}
	if meta.IsDefined("log_file") {
		c.LogFile = raw.LogFile
	}

	for _, d := range []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"retry_delay", raw.RetryDelay, &c.RetryDelay},
		{"commit_delay", raw.CommitDelay, &c.CommitDelay},
		{"day_delay", raw.DayDelay, &c.DayDelay},
	} {
		if !meta.IsDefined(d.key) {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return errors.NewConfigError(d.key, d.value,
				errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		*d.dst = parsed
	}

	return nil
}

// LoadFromEnvironment updates config from GITINK_* environment variables.
func (c *Config) LoadFromEnvironment() {
	c.RepoPath = getEnvString("GITINK_REPO_PATH", c.RepoPath)
	c.JournalPath = getEnvString("GITINK_JOURNAL", c.JournalPath)
	c.CommitPrefix = getEnvString("GITINK_COMMIT_PREFIX", c.CommitPrefix)
	c.EpochDate = getEnvString("GITINK_EPOCH", c.EpochDate)
	c.MaxAttempts = getEnvInt("GITINK_MAX_ATTEMPTS", c.MaxAttempts)
	c.RetryDelay = getEnvDuration("GITINK_RETRY_DELAY", c.RetryDelay)
	c.CommitDelay = getEnvDuration("GITINK_COMMIT_DELAY", c.CommitDelay)
	c.DayDelay = getEnvDuration("GITINK_DAY_DELAY", c.DayDelay)
	c.Remote = getEnvString("GITINK_REMOTE", c.Remote)
	c.AutoPush = getEnvBool("GITINK_AUTO_PUSH", c.AutoPush)
	c.Verbose = getEnvBool("GITINK_VERBOSE", c.Verbose)
	c.NonInteractive = getEnvBool("GITINK_NON_INTERACTIVE", c.NonInteractive)
	c.Debug = getEnvBool("GITINK_DEBUG", c.Debug)
	c.LogFile = getEnvString("GITINK_LOG_FILE", c.LogFile)
}

// Finalize validates and finalizes the configuration.
func (c *Config) Finalize() error {
	if c.MaxAttempts < 1 {
		return errors.NewConfigError("max_attempts", c.MaxAttempts,
			errors.Wrap(errors.ErrInvalidConfiguration, "must be at least 1"))
	}
	if c.RetryDelay < 0 || c.CommitDelay < 0 || c.DayDelay < 0 {
		return errors.NewConfigError("delays", nil,
			errors.Wrap(errors.ErrInvalidConfiguration, "delays must be non-negative"))
	}
	if c.Remote == "" {
		return errors.NewConfigError("remote", "",
			errors.Wrap(errors.ErrInvalidConfiguration, "remote name cannot be empty"))
	}

	if c.RepoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.NewConfigError("repo", "",
				errors.Wrap(errors.ErrInvalidConfiguration,
					fmt.Sprintf("failed to get current directory: %v", err)))
		}
		c.RepoPath = wd
	}
	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repo", c.RepoPath,
			errors.Wrap(errors.ErrInvalidConfiguration,
				fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if !filepath.IsAbs(c.JournalPath) {
		c.JournalPath = filepath.Join(c.RepoPath, c.JournalPath)
	}

	c.epoch = pattern.DefaultEpoch
	if c.EpochDate != "" {
		epoch, err := pattern.ParseDate(c.EpochDate)
		if err != nil {
			return errors.NewConfigError("epoch", c.EpochDate,
				errors.Wrap(errors.ErrInvalidConfiguration, err.Error()))
		}
		c.epoch = epoch
	}

	if c.LogFile == "" {
		// Follow the XDG Base Directory Specification.
		logDir := os.Getenv("XDG_DATA_HOME")
		if logDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				logDir = filepath.Join(homeDir, ".local", "share")
			} else {
				logDir = os.TempDir()
			}
		}

		repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(c.RepoPath)))[:8]
		c.LogFile = filepath.Join(logDir, "gitink", "logs", fmt.Sprintf("gitink-%s.log", repoHash))
	}

	return nil
}

// Epoch returns the finalized pattern anchor date.
func (c *Config) Epoch() time.Time {
	return c.epoch
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as int or a default value
func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvDuration returns an environment variable as a duration or a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(valueStr) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultValue
}
