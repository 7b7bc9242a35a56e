// Package main implements gitink, a contribution-calendar drawing tool
//
// gitink issues git commits whose author and committer dates are chosen so
// that a contribution calendar rendering of the repository spells out letter
// glyphs. Each calendar cell is a day; dark and light intensity form the
// pixels. The schedule is deterministic: a fixed anchor date pins the
// top-left cell, and every later day maps to a cell in a repeating sequence
// of 7x4 letter grids.
//
// Before each commit a line is appended to a plain-text journal in the
// repository, recording the real time the commit was made and the day it was
// dated to. The journal file is itself what gets committed, so every entry
// commit carries exactly one new journal line.
//
// # Basic Usage
//
//	gitink draw 2025-01-12 2025-02-08 3 1   # four weeks, 3 commits dark, 1 light
//	gitink draw                             # prompt for the four values
//	gitink today 3 1                        # just the current day's cell
//	gitink preview 2025-01-12 2025-03-08    # render cells, no commits
//	gitink push                             # push accumulated history
//
// # Configuration Options
//
// Settings are layered from built-in defaults, a TOML config file
// (gitink.toml or --config), GITINK_* environment variables, and
// command-line flags, each overriding the previous. Run gitink --help for
// the full flag list.
//
// # Concurrency Safety
//
// A per-repository lock file prevents two gitink processes from writing to
// the same repository at once. Transient git index.lock contention from
// other tools is retried a bounded number of times before giving up.
package main
