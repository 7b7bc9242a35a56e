// Package journal maintains gitink's append-only commit record.
//
// The journal is a plain text file, one line per issued commit, recording
// the logical sequence number, the real wall-clock time of the append, and
// the spoofed date the commit was stamped with. Lines are never rewritten;
// the file only ever grows.
package journal

import (
	"fmt"
	"os"
	"time"
)

// Header is the fixed first line written when the journal file is created.
const Header = "gitink commit journal"

// Journal appends commit records to a single text file.
type Journal struct {
	path string
}

// New creates a Journal for the given file path. The file itself is not
// touched until Init or Append is called.
func New(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file path, for staging.
func (j *Journal) Path() string {
	return j.path
}

// Init creates the journal file with its header line if it does not exist.
// It reports whether a file-system write happened, so the caller can decide
// whether the initialization itself needs a commit.
func (j *Journal) Init() (created bool, err error) {
	if _, statErr := os.Stat(j.path); statErr == nil {
		return false, nil
	} else if !os.IsNotExist(statErr) {
		return false, fmt.Errorf("failed to stat journal file: %w", statErr)
	}

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create journal file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
			created = false
		}
	}()

	if _, err = fmt.Fprintln(f, Header); err != nil {
		return false, fmt.Errorf("failed to write journal header: %w", err)
	}
	return true, nil
}

// Append writes one commit record line. seq is the sequence index of the
// commit within its day, now the real wall-clock time of the append, and
// target the spoofed date the commit will carry.
func (j *Journal) Append(seq int, now time.Time, target time.Time) error {
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal file: %w", err)
	}

	line := fmt.Sprintf("Commit %d made at real time %s but dated %s",
		seq, now.Format(time.RFC3339), target.Format("2006-01-02"))
	_, writeErr := fmt.Fprintln(f, line)

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("failed to append journal line: %w", writeErr)
	}
	return nil
}
