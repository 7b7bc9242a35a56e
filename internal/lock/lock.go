// Package lock prevents two gitink runs from writing to the same
// repository at once. The scheduler assumes it is the sole writer to the
// journal and the git index for the duration of a run; this file lock is
// what backs that assumption.
package lock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"gitink/internal/errors"
)

// Locker holds a per-repository lock file containing the owner's PID.
type Locker struct {
	lockFile string
	lockFd   *os.File
	pid      int
	acquired bool
}

// New creates a Locker for the specified repository path.
func New(repoPath string) (*Locker, error) {
	if runtime.GOOS == "windows" {
		return nil, errors.NewLockError("", 0,
			errors.Wrap(errors.ErrInvalidConfiguration,
				"gitink currently only supports Unix-like operating systems"))
	}

	repoHash := fmt.Sprintf("%x", sha256.Sum256([]byte(repoPath)))[:16]
	lockFile := filepath.Join(os.TempDir(), fmt.Sprintf("gitink-%s.lock", repoHash))

	return &Locker{
		lockFile: lockFile,
		pid:      os.Getpid(),
	}, nil
}

// Acquire takes the lock, recovering stale locks left by dead processes.
// Returns an error carrying errors.ErrAlreadyRunning when a live gitink
// process holds the lock.
func (l *Locker) Acquire() error {
	fd, err := os.OpenFile(l.lockFile, os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return errors.NewLockError(l.lockFile, 0,
			errors.Wrap(err, "failed to open lock file"))
	}
	l.lockFd = fd

	if err := l.flock(); err != nil {
		// EWOULDBLOCK and EAGAIN are distinct codes on some older Unixes;
		// treat them the same for portability.
		if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) {
			return l.handleHeldLock()
		}
		l.close()
		return errors.NewLockError(l.lockFile, 0,
			errors.Wrap(err, "failed to acquire lock"))
	}

	if err := l.writePid(); err != nil {
		_ = l.Release()
		return err
	}

	l.acquired = true
	return nil
}

// handleHeldLock distinguishes a live owner from a stale lock. flock
// releases automatically on process death, so reaching here normally means
// a live owner; the PID check covers lock files left without a held flock.
func (l *Locker) handleHeldLock() error {
	otherPid, err := l.readPid()
	l.close()
	if err != nil {
		return errors.NewLockError(l.lockFile, 0,
			errors.Wrap(err, "another gitink instance is running, but couldn't identify its PID"))
	}

	if isProcessRunning(otherPid) {
		return errors.NewLockError(l.lockFile, otherPid, errors.ErrAlreadyRunning)
	}

	// Stale lock: remove and try once more.
	if err := os.Remove(l.lockFile); err != nil && !os.IsNotExist(err) {
		return errors.NewLockError(l.lockFile, otherPid,
			errors.Wrapf(err, "found stale lock file from PID %d, but failed to remove it", otherPid))
	}
	return l.Acquire()
}

// Release drops the lock and removes the lock file.
func (l *Locker) Release() error {
	if l.lockFd == nil {
		return nil
	}

	var err error
	if flockErr := syscall.Flock(int(l.lockFd.Fd()), syscall.LOCK_UN); flockErr != nil {
		err = errors.NewLockError(l.lockFile, l.pid,
			errors.Wrap(flockErr, "failed to release lock"))
	}

	if closeErr := l.lockFd.Close(); closeErr != nil && err == nil {
		err = errors.NewLockError(l.lockFile, l.pid,
			errors.Wrap(closeErr, "failed to close lock file"))
	}
	l.lockFd = nil
	l.acquired = false

	if removeErr := os.Remove(l.lockFile); removeErr != nil && !os.IsNotExist(removeErr) && err == nil {
		err = errors.NewLockError(l.lockFile, l.pid,
			errors.Wrap(removeErr, "failed to remove lock file"))
	}

	return err
}

// LockFile returns the lock file path.
func (l *Locker) LockFile() string {
	return l.lockFile
}

func (l *Locker) flock() error {
	return syscall.Flock(int(l.lockFd.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func (l *Locker) writePid() error {
	if err := l.lockFd.Truncate(0); err != nil {
		return errors.NewLockError(l.lockFile, l.pid,
			errors.Wrap(err, "failed to truncate lock file"))
	}
	if _, err := l.lockFd.WriteAt([]byte(strconv.Itoa(l.pid)), 0); err != nil {
		return errors.NewLockError(l.lockFile, l.pid,
			errors.Wrap(err, "failed to write PID to lock file"))
	}
	return nil
}

func (l *Locker) readPid() (int, error) {
	data, err := os.ReadFile(l.lockFile)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read lock file")
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrap(err, "invalid PID in lock file")
	}
	return pid, nil
}

func (l *Locker) close() {
	if l.lockFd != nil {
		_ = l.lockFd.Close()
		l.lockFd = nil
	}
}

// isProcessRunning checks if a process exists using signal 0.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
