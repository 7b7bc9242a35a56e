package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"gitink/internal/errors"
)

// indexLockSignature is the substring git prints when its index lock file
// blocks an operation, e.g.
//
//	fatal: Unable to create '/repo/.git/index.lock': File exists.
const indexLockSignature = "index.lock"

// Command describes one external command invocation. Env entries are
// appended to the inherited environment, which is how commit dates get
// overridden without touching global git config.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// CommandExecutor runs external commands and returns classified errors.
// Lock-contention failures carry errors.ErrLockContention; every other
// failure carries errors.ErrGitOperationFailed.
type CommandExecutor interface {
	// Execute runs a command, discarding stdout.
	Execute(ctx context.Context, c Command) error

	// ExecuteWithOutput runs a command and returns its stdout.
	ExecuteWithOutput(ctx context.Context, c Command) (string, error)
}

// ExecExecutor is the default CommandExecutor backed by os/exec.
type ExecExecutor struct{}

// NewExecExecutor creates a new ExecExecutor.
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Execute implements CommandExecutor.Execute.
func (e *ExecExecutor) Execute(ctx context.Context, c Command) error {
	cmd := e.build(ctx, c)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return classify(c, err, stderr.String())
	}
	return nil
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput.
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, c Command) (string, error) {
	cmd := e.build(ctx, c)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classify(c, err, stderr.String())
	}
	return stdout.String(), nil
}

func (e *ExecExecutor) build(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd
}

// classify wraps a command failure into a GitError whose sentinel reflects
// whether the failure is retryable lock contention.
func classify(c Command, err error, stderr string) error {
	sentinel := errors.ErrGitOperationFailed
	if strings.Contains(stderr, indexLockSignature) {
		sentinel = errors.ErrLockContention
	}

	operation := c.Name
	if c.Name == "git" && len(c.Args) > 0 {
		operation = c.Args[0]
	}

	wrapped := errors.Wrap(sentinel, err.Error())
	return errors.NewGitError(operation, c.Args, wrapped, strings.TrimSpace(stderr))
}

// IsLockConflict reports whether err is a retryable index.lock failure.
func IsLockConflict(err error) bool {
	return errors.Is(err, errors.ErrLockContention)
}
