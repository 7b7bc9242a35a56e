package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitink/internal/errors"
	"gitink/internal/logger"
)

// Repository wraps the external git tool for a single working tree.
// gitink depends on exactly four capabilities: staging a file, committing
// with an overridden date, detecting lock contention, and pushing.
type Repository struct {
	path     string
	executor CommandExecutor
	logger   logger.Logger
}

// New creates a Repository using the default executor.
func New(path string, log logger.Logger) *Repository {
	return NewWithExecutor(path, NewExecExecutor(), log)
}

// NewWithExecutor creates a Repository with a custom executor, primarily
// for tests that simulate success, lock contention, and fatal failure.
func NewWithExecutor(path string, executor CommandExecutor, log logger.Logger) *Repository {
	return &Repository{
		path:     path,
		executor: executor,
		logger:   log,
	}
}

// Path returns the working tree path.
func (r *Repository) Path() string {
	return r.path
}

// IsRepository checks if the given path is a git working tree.
func IsRepository(ctx context.Context, path string) bool {
	executor := NewExecExecutor()
	err := executor.Execute(ctx, Command{
		Name: "git",
		Args: []string{"-C", path, "rev-parse", "--is-inside-work-tree"},
	})
	return err == nil
}

// Stage adds the given paths to the index.
func (r *Repository) Stage(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	return r.run(ctx, nil, args...)
}

// Commit records the staged changes with both the author and committer
// dates forced to the given instant, regardless of real time.
func (r *Repository) Commit(ctx context.Context, message string, date time.Time) error {
	stamp := date.UTC().Format(time.RFC3339)
	env := []string{
		"GIT_AUTHOR_DATE=" + stamp,
		"GIT_COMMITTER_DATE=" + stamp,
	}
	return r.run(ctx, env, "commit", "-m", message)
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.runWithOutput(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Push pushes the current HEAD to the given remote.
func (r *Repository) Push(ctx context.Context, remote string) error {
	return r.run(ctx, nil, "push", remote, "HEAD")
}

// IndexLockPath returns the path of git's internal index lock file.
func (r *Repository) IndexLockPath() string {
	return filepath.Join(r.path, ".git", "index.lock")
}

// ClearIndexLock removes a leftover index.lock so the next attempt can
// proceed. Reports whether a file was actually removed. Racing the owning
// git process is accepted here: the caller only clears after a detected
// conflict and a delay.
func (r *Repository) ClearIndexLock() (bool, error) {
	lockPath := r.IndexLockPath()
	if err := os.Remove(lockPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.NewLockError(lockPath, 0,
			errors.Wrap(err, "failed to remove git index lock"))
	}
	r.logger.Info("Removed leftover index lock at %s", lockPath)
	return true, nil
}

// run executes a git command in the working tree.
func (r *Repository) run(ctx context.Context, env []string, args ...string) error {
	return r.executor.Execute(ctx, Command{
		Name: "git",
		Args: args,
		Dir:  r.path,
		Env:  env,
	})
}

// runWithOutput executes a git command and returns its stdout.
func (r *Repository) runWithOutput(ctx context.Context, args ...string) (string, error) {
	return r.executor.ExecuteWithOutput(ctx, Command{
		Name: "git",
		Args: args,
		Dir:  r.path,
	})
}
