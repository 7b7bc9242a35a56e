package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitink/internal/config"
	internalErrors "gitink/internal/errors"
	"gitink/internal/logger"
	"gitink/internal/scheduler"
)

// stubDrawer records the range it was asked to run over.
type stubDrawer struct {
	runs    int
	start   time.Time
	end     time.Time
	sched   scheduler.Config
	summary scheduler.Summary
	err     error
}

func (d *stubDrawer) Run(ctx context.Context, start, end time.Time) (scheduler.Summary, error) {
	d.runs++
	d.start = start
	d.end = end
	return d.summary, d.err
}

type stubLocker struct {
	acquireErr error
	acquired   int
	released   int
}

func (l *stubLocker) Acquire() error {
	l.acquired++
	return l.acquireErr
}

func (l *stubLocker) Release() error {
	l.released++
	return nil
}

type appFixture struct {
	app    *App
	drawer *stubDrawer
	locker *stubLocker
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()

	f := &appFixture{
		drawer: &stubDrawer{},
		locker: &stubLocker{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	cfg := config.New()
	cfg.RepoPath = t.TempDir()
	cfg.VersionInfo = config.VersionInfo{Version: "test", Commit: "abc", Date: "today"}

	f.app = NewApp(AppOptions{
		Config: cfg,
		Logger: logger.NewWithOutput(false, "", false, io.Discard, io.Discard),
		Locker: f.locker,
		Stdout: f.stdout,
		Stderr: f.stderr,
		Exit:   func(int) {},
		ExecLookPath: func(file string) (string, error) {
			return "/usr/bin/" + file, nil
		},
		IsRepository: func(ctx context.Context, path string) bool { return true },
		NewDrawer: func(a *App, sched scheduler.Config) Drawer {
			f.drawer.sched = sched
			return f.drawer
		},
		Now: func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	return f
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDrawRejectsNegativeCountsBeforeDoingAnything(t *testing.T) {
	f := newAppFixture(t)

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 12), -1, 2)

	require.Error(t, err)
	assert.True(t, internalErrors.Is(err, internalErrors.ErrInvalidArgument))
	assert.Zero(t, f.drawer.runs)
	assert.Zero(t, f.locker.acquired)
}

func TestDrawFailsOutsideGitRepository(t *testing.T) {
	f := newAppFixture(t)
	f.app.isRepository = func(ctx context.Context, path string) bool { return false }

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 12), 1, 1)

	require.Error(t, err)
	assert.True(t, internalErrors.Is(err, internalErrors.ErrNotGitRepository))
	assert.Zero(t, f.drawer.runs)
}

func TestDrawFailsWhenInstanceLockHeld(t *testing.T) {
	f := newAppFixture(t)
	f.locker.acquireErr = internalErrors.ErrAlreadyRunning

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 12), 1, 1)

	require.Error(t, err)
	assert.True(t, internalErrors.Is(err, internalErrors.ErrAlreadyRunning))
	assert.Zero(t, f.drawer.runs)
	assert.Zero(t, f.locker.released)
}

func TestDrawRunsSchedulerAndReleasesLock(t *testing.T) {
	f := newAppFixture(t)
	f.app.Config.CommitDelay = 2 * time.Second
	f.app.Config.AutoPush = true

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 18), 3, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, f.drawer.runs)
	assert.Equal(t, day(2025, 1, 12), f.drawer.start)
	assert.Equal(t, day(2025, 1, 18), f.drawer.end)
	assert.Equal(t, 1, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)

	assert.Equal(t, 3, f.drawer.sched.DarkCount)
	assert.Equal(t, 1, f.drawer.sched.LightCount)
	assert.Equal(t, config.DefaultCommitPrefix, f.drawer.sched.CommitPrefix)
	assert.Equal(t, 2*time.Second, f.drawer.sched.CommitDelay)
	assert.True(t, f.drawer.sched.Push)
	assert.Equal(t, "origin", f.drawer.sched.Remote)
}

func TestDrawReleasesLockWhenSchedulerFails(t *testing.T) {
	f := newAppFixture(t)
	f.drawer.err = fmt.Errorf("boom")

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 12), 1, 1)

	require.Error(t, err)
	assert.Equal(t, 1, f.locker.released)
}

func TestDrawFailsWhenGitMissing(t *testing.T) {
	f := newAppFixture(t)
	f.app.execLookPath = func(string) (string, error) {
		return "", fmt.Errorf("not found")
	}

	err := f.app.Draw(context.Background(), day(2025, 1, 12), day(2025, 1, 12), 1, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "git is not found in PATH")
	assert.Zero(t, f.drawer.runs)
}

func TestPushFailsOutsideGitRepository(t *testing.T) {
	f := newAppFixture(t)
	f.app.isRepository = func(ctx context.Context, path string) bool { return false }

	err := f.app.Push(context.Background())

	require.Error(t, err)
	assert.True(t, internalErrors.Is(err, internalErrors.ErrNotGitRepository))
}

func TestShowVersion(t *testing.T) {
	f := newAppFixture(t)

	f.app.ShowVersion()

	assert.Equal(t, "gitink test (abc) built on today\n", f.stdout.String())
}

func TestNewAppRequiresConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewApp(AppOptions{})
	})
}
