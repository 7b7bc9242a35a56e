package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	wrapped := Wrap(ErrLockContention, "commit blocked")
	assert.True(t, Is(wrapped, ErrLockContention))
	assert.False(t, Is(wrapped, ErrGitOperationFailed))

	doubly := Wrapf(wrapped, "attempt %d", 2)
	assert.True(t, Is(doubly, ErrLockContention))
}

func TestGitError(t *testing.T) {
	t.Parallel()

	underlying := Wrap(ErrGitOperationFailed, "exit status 128")
	err := NewGitError("commit", []string{"-m", "msg"}, underlying, "fatal: Unable to create '/repo/.git/index.lock': File exists.")

	assert.Contains(t, err.Error(), "git commit failed")
	assert.Contains(t, err.Error(), "index.lock")
	assert.True(t, errors.Is(err, ErrGitOperationFailed))

	var gitErr *GitError
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "commit", gitErr.Operation)
}

func TestGitErrorWithoutOutput(t *testing.T) {
	t.Parallel()

	err := NewGitError("push", nil, ErrGitOperationFailed, "")
	assert.Equal(t, fmt.Sprintf("git push failed: %v", ErrGitOperationFailed), err.Error())
}

func TestLockError(t *testing.T) {
	t.Parallel()

	err := NewLockError("/tmp/gitink-abc.lock", 4242, ErrAlreadyRunning)
	assert.Contains(t, err.Error(), "/tmp/gitink-abc.lock")
	assert.Contains(t, err.Error(), "4242")
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	noPid := NewLockError("/tmp/gitink-abc.lock", 0, ErrAlreadyRunning)
	assert.NotContains(t, noPid.Error(), "PID")
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	err := NewConfigError("darkCount", -1, Wrap(ErrInvalidArgument, "must be non-negative"))
	assert.Contains(t, err.Error(), "darkCount")
	assert.Contains(t, err.Error(), "-1")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	nilValue := NewConfigError("repoPath", nil, ErrInvalidConfiguration)
	assert.NotContains(t, nilValue.Error(), "=")
}
