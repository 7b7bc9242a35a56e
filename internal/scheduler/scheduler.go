// Package scheduler walks a calendar date range and issues the journal
// appends and dated commits that draw the glyph schedule onto a
// contribution calendar.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"gitink/internal/errors"
	"gitink/internal/git"
	"gitink/internal/journal"
	"gitink/internal/logger"
	"gitink/internal/pattern"
)

const (
	// DefaultMaxAttempts bounds the retry budget for one git operation
	// blocked by index.lock contention.
	DefaultMaxAttempts = 5

	// DefaultRetryDelay is the fixed pause between lock-retry attempts.
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultCommitPrefix for commit messages.
	DefaultCommitPrefix = "[gitink]"
)

// GitRepo is the slice of the git layer the scheduler depends on.
type GitRepo interface {
	Stage(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string, date time.Time) error
	ClearIndexLock() (bool, error)
	Push(ctx context.Context, remote string) error
}

// Config contains the settings of a scheduling run.
type Config struct {
	// Commits issued per dark and per light day. Both must be >= 0.
	DarkCount  int
	LightCount int

	// Commit message prefix.
	CommitPrefix string

	// Lock-contention retry budget and fixed inter-attempt delay.
	MaxAttempts int
	RetryDelay  time.Duration

	// Optional pacing delays. Not correctness-critical; they reduce the
	// chance of tripping over git's own locking in the first place.
	CommitDelay time.Duration
	DayDelay    time.Duration

	// When Push is set, the run pushes HEAD to Remote on success
	// instead of printing a reminder.
	Push   bool
	Remote string
}

// Summary reports what a run processed. Days with a zero commit count are
// classified but not counted as processed.
type Summary struct {
	DarkDays  int
	LightDays int
	Commits   int
}

// Scheduler issues dated commits for each day of a range, strictly
// sequentially. It assumes it is the sole writer to the repository and the
// journal for the duration of a run.
type Scheduler struct {
	cfg      Config
	resolver *pattern.Resolver
	repo     GitRepo
	journal  *journal.Journal
	logger   logger.Logger

	// Injectable for tests.
	sleep func(time.Duration)
	now   func() time.Time

	journalReady bool
}

// New creates a Scheduler, applying defaults for zero-valued retry and
// prefix settings.
func New(cfg Config, resolver *pattern.Resolver, repo GitRepo, j *journal.Journal, log logger.Logger) *Scheduler {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.CommitPrefix == "" {
		cfg.CommitPrefix = DefaultCommitPrefix
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return &Scheduler{
		cfg:      cfg,
		resolver: resolver,
		repo:     repo,
		journal:  j,
		logger:   log,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Run walks each calendar day from start to end inclusive, classifies it,
// and issues the configured number of journal-append + commit operations.
// Already-issued commits are never rolled back: on a fatal failure the
// partial progress remains and the error is returned.
func (s *Scheduler) Run(ctx context.Context, start, end time.Time) (Summary, error) {
	var sum Summary

	if s.cfg.DarkCount < 0 {
		return sum, errors.Wrapf(errors.ErrInvalidArgument, "dark commit count %d must be non-negative", s.cfg.DarkCount)
	}
	if s.cfg.LightCount < 0 {
		return sum, errors.Wrapf(errors.ErrInvalidArgument, "light commit count %d must be non-negative", s.cfg.LightCount)
	}

	start = pattern.Normalize(start)
	end = pattern.Normalize(end)
	if end.Before(start) {
		s.logger.WarningToUser("End date %s is before start date %s, nothing to do",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
		return sum, nil
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		c, ok := s.resolver.Classify(day)
		if !ok {
			s.logger.Info("Skipping %s: before the pattern epoch", day.Format("2006-01-02"))
			continue
		}

		count := s.cfg.LightCount
		if c.Intensity == pattern.Dark {
			count = s.cfg.DarkCount
		}
		if count == 0 {
			s.logger.Info("Skipping %s: %s day with zero configured commits", day.Format("2006-01-02"), c.Intensity)
			continue
		}

		s.logger.InfoToUser("%s: glyph %s cell (%d,%d) is %s, issuing %d commits",
			day.Format("2006-01-02"), c.Glyph, c.DayIndex, c.WeekIndex, c.Intensity, count)

		for i := 1; i <= count; i++ {
			if err := s.issueCommit(ctx, day, i, count); err != nil {
				return sum, err
			}
			sum.Commits++
			if i < count && s.cfg.CommitDelay > 0 {
				s.sleep(s.cfg.CommitDelay)
			}
		}

		if c.Intensity == pattern.Dark {
			sum.DarkDays++
		} else {
			sum.LightDays++
		}

		if s.cfg.DayDelay > 0 && day.Before(end) {
			s.sleep(s.cfg.DayDelay)
		}
	}

	s.finish(ctx, sum)
	return sum, nil
}

// issueCommit appends one journal line and records one commit dated to the
// target day. The journal file is initialized on the first commit of a run.
func (s *Scheduler) issueCommit(ctx context.Context, day time.Time, i, count int) error {
	if err := s.ensureJournal(ctx, day); err != nil {
		return err
	}

	if err := s.journal.Append(i, s.now(), day); err != nil {
		return errors.Wrap(err, "failed to append journal entry")
	}

	message := fmt.Sprintf("%s %d/%d on %s", s.cfg.CommitPrefix, i, count, day.Format("2006-01-02"))
	return s.withLockRetry(ctx, func() error {
		if err := s.repo.Stage(ctx, s.journal.Path()); err != nil {
			return err
		}
		return s.repo.Commit(ctx, message, day)
	})
}

// ensureJournal creates the journal file with its header if absent, at most
// once per run, before the first commit. The file-system write is itself
// recorded as an initialize commit.
func (s *Scheduler) ensureJournal(ctx context.Context, day time.Time) error {
	if s.journalReady {
		return nil
	}

	created, err := s.journal.Init()
	if err != nil {
		return errors.Wrap(err, "failed to initialize journal")
	}

	if created {
		message := s.cfg.CommitPrefix + " initialize commit journal"
		err := s.withLockRetry(ctx, func() error {
			if err := s.repo.Stage(ctx, s.journal.Path()); err != nil {
				return err
			}
			return s.repo.Commit(ctx, message, day)
		})
		if err != nil {
			return err
		}
		s.logger.Success("Initialized commit journal at %s", s.journal.Path())
	}

	s.journalReady = true
	return nil
}

// withLockRetry runs op, retrying up to the configured attempt budget when
// the failure is index.lock contention. A detected lock artifact is removed
// before the next attempt. Any other failure aborts immediately.
func (s *Scheduler) withLockRetry(ctx context.Context, op func() error) error {
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !git.IsLockConflict(err) {
			return err
		}
		if attempt >= s.cfg.MaxAttempts {
			return errors.Wrapf(err, "giving up after %d attempts on git index lock", attempt)
		}

		s.logger.Warning("Git index locked (attempt %d/%d), clearing lock and retrying", attempt, s.cfg.MaxAttempts)
		if _, clearErr := s.repo.ClearIndexLock(); clearErr != nil {
			s.logger.Warning("Failed to clear index lock: %v", clearErr)
		}
		s.sleep(s.cfg.RetryDelay)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
}

// finish prints the run summary and pushes or reminds the user to push.
func (s *Scheduler) finish(ctx context.Context, sum Summary) {
	s.logger.StatusMessage("")
	s.logger.StatusMessage("📊 Run summary")
	s.logger.StatusMessage("  Dark days processed:  %d", sum.DarkDays)
	s.logger.StatusMessage("  Light days processed: %d", sum.LightDays)
	s.logger.StatusMessage("  Commits issued:       %d", sum.Commits)

	if sum.Commits == 0 {
		return
	}

	if s.cfg.Push {
		if err := s.repo.Push(ctx, s.cfg.Remote); err != nil {
			s.logger.WarningToUser("Push to %s failed: %v", s.cfg.Remote, err)
			s.logger.StatusMessage("Push manually with: git push %s", s.cfg.Remote)
			return
		}
		s.logger.Success("Pushed to %s", s.cfg.Remote)
		return
	}

	s.logger.StatusMessage("Remember to push: git push %s", s.cfg.Remote)
}
