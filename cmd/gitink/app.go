package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"gitink/internal/config"
	internalErrors "gitink/internal/errors"
	"gitink/internal/git"
	"gitink/internal/journal"
	"gitink/internal/lock"
	"gitink/internal/logger"
	"gitink/internal/pattern"
	"gitink/internal/scheduler"
)

// Drawer runs one scheduling pass over a date range.
type Drawer interface {
	Run(ctx context.Context, start, end time.Time) (scheduler.Summary, error)
}

// Locker manages the per-repository instance lock.
type Locker interface {
	Acquire() error
	Release() error
}

// AppOptions contains app configuration and injectable dependencies.
type AppOptions struct {
	// Required
	Config *config.Config

	// Optional components; Initialize builds the real ones when nil
	Logger logger.Logger
	Locker Locker

	// I/O dependencies
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// System dependencies
	Exit         func(code int)
	ExecLookPath func(file string) (string, error)
	IsRepository func(ctx context.Context, path string) bool

	// NewDrawer builds the scheduler for a run; tests substitute a stub.
	NewDrawer func(a *App, sched scheduler.Config) Drawer

	// Now supplies the current time; tests substitute a fixed clock.
	Now func() time.Time
}

// App is the main gitink application.
type App struct {
	Config *config.Config
	Logger logger.Logger
	Locker Locker

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	exit         func(code int)
	execLookPath func(file string) (string, error)
	isRepository func(ctx context.Context, path string) bool
	newDrawer    func(a *App, sched scheduler.Config) Drawer
	now          func() time.Time

	initialized bool
}

// NewApp creates an App with custom dependencies, defaulting any that
// are nil.
func NewApp(opts AppOptions) *App {
	if opts.Config == nil {
		panic("Config is required in AppOptions")
	}

	app := &App{
		Config:       opts.Config,
		Logger:       opts.Logger,
		Locker:       opts.Locker,
		Stdin:        opts.Stdin,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		exit:         opts.Exit,
		execLookPath: opts.ExecLookPath,
		isRepository: opts.IsRepository,
		newDrawer:    opts.NewDrawer,
		now:          opts.Now,
	}

	if app.Stdin == nil {
		app.Stdin = os.Stdin
	}
	if app.Stdout == nil {
		app.Stdout = os.Stdout
	}
	if app.Stderr == nil {
		app.Stderr = os.Stderr
	}
	if app.exit == nil {
		app.exit = os.Exit
	}
	if app.execLookPath == nil {
		app.execLookPath = exec.LookPath
	}
	if app.isRepository == nil {
		app.isRepository = git.IsRepository
	}
	if app.newDrawer == nil {
		app.newDrawer = newScheduler
	}
	if app.now == nil {
		app.now = time.Now
	}

	return app
}

// newScheduler wires the real scheduler against the configured repository.
func newScheduler(a *App, sched scheduler.Config) Drawer {
	repo := git.New(a.Config.RepoPath, a.Logger)
	j := journal.New(a.Config.JournalPath)
	resolver := pattern.New(pattern.Config{Epoch: a.Config.Epoch()})
	return scheduler.New(sched, resolver, repo, j, a.Logger)
}

// Initialize finalizes the configuration and sets up components not
// provided during construction. Safe to call more than once.
func (a *App) Initialize() error {
	if a.initialized {
		return nil
	}

	if err := a.Config.Finalize(); err != nil {
		if internalErrors.Is(err, internalErrors.ErrInvalidConfiguration) {
			return err
		}
		return internalErrors.Wrap(internalErrors.ErrInvalidConfiguration, err.Error())
	}

	if a.Logger == nil {
		a.Logger = logger.NewWithOutput(a.Config.Debug, a.Config.LogFile, a.Config.Verbose, a.Stdout, a.Stderr)
	}

	if a.Locker == nil {
		locker, err := lock.New(a.Config.RepoPath)
		if err != nil {
			return internalErrors.Wrap(err, "failed to initialize lock")
		}
		a.Locker = locker
	}

	a.initialized = true
	return nil
}

// schedulerConfig builds the scheduler settings for the given commit counts.
func (a *App) schedulerConfig(darkCount, lightCount int) scheduler.Config {
	return scheduler.Config{
		DarkCount:    darkCount,
		LightCount:   lightCount,
		CommitPrefix: a.Config.CommitPrefix,
		MaxAttempts:  a.Config.MaxAttempts,
		RetryDelay:   a.Config.RetryDelay,
		CommitDelay:  a.Config.CommitDelay,
		DayDelay:     a.Config.DayDelay,
		Push:         a.Config.AutoPush,
		Remote:       a.Config.Remote,
	}
}

// Draw verifies prerequisites, takes the instance lock, and runs one
// scheduling pass over the given range.
func (a *App) Draw(ctx context.Context, start, end time.Time, darkCount, lightCount int) error {
	if darkCount < 0 || lightCount < 0 {
		return internalErrors.Wrapf(internalErrors.ErrInvalidArgument,
			"commit counts must be non-negative (got dark=%d light=%d)", darkCount, lightCount)
	}

	if err := a.Initialize(); err != nil {
		return err
	}

	if err := a.checkRequiredCommands(); err != nil {
		return err
	}

	if !a.isRepository(ctx, a.Config.RepoPath) {
		return internalErrors.ErrNotGitRepository
	}
	a.Logger.Info("Git repository verified at %s", a.Config.RepoPath)

	if err := a.Locker.Acquire(); err != nil {
		if internalErrors.Is(err, internalErrors.ErrAlreadyRunning) {
			return err
		}
		return internalErrors.Wrap(err, "failed to acquire instance lock")
	}
	defer func() {
		if err := a.Locker.Release(); err != nil {
			a.Logger.Warning("Failed to release instance lock: %v", err)
		}
	}()

	drawer := a.newDrawer(a, a.schedulerConfig(darkCount, lightCount))
	_, err := drawer.Run(ctx, start, end)
	return err
}

// Push pushes the repository's HEAD to the configured remote.
func (a *App) Push(ctx context.Context) error {
	if err := a.Initialize(); err != nil {
		return err
	}
	if err := a.checkRequiredCommands(); err != nil {
		return err
	}
	if !a.isRepository(ctx, a.Config.RepoPath) {
		return internalErrors.ErrNotGitRepository
	}

	repo := git.New(a.Config.RepoPath, a.Logger)
	if err := repo.Push(ctx, a.Config.Remote); err != nil {
		return err
	}
	a.Logger.Success("Pushed to %s", a.Config.Remote)
	return nil
}

// ShowVersion displays version information.
func (a *App) ShowVersion() {
	_, _ = fmt.Fprintf(a.Stdout, "gitink %s (%s) built on %s\n",
		a.Config.VersionInfo.Version,
		a.Config.VersionInfo.Commit,
		a.Config.VersionInfo.Date)
}

// checkRequiredCommands verifies git is available in PATH.
func (a *App) checkRequiredCommands() error {
	if _, err := a.execLookPath("git"); err != nil {
		return internalErrors.New("git is not found in PATH")
	}
	return nil
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.Logger != nil {
		if l, ok := a.Logger.(*logger.DefaultLogger); ok && l != nil {
			return l.Close()
		}
	}
	return nil
}
