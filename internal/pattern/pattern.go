// Package pattern maps calendar dates onto letter-glyph pixel cells.
//
// A contribution calendar renders one cell per day, seven rows deep and one
// column per week. gitink treats a 7x4 block of cells as a canvas for a
// single letter and schedules commit intensity so the rendered block spells
// the letter. This package owns the date arithmetic only; it performs no
// side effects and never consults the wall clock.
package pattern

import (
	"fmt"
	"time"
)

// Glyph identifies one of the predefined letter grids.
type Glyph string

const (
	GlyphH Glyph = "H"
	GlyphE Glyph = "E"
)

// Intensity is the binary cell classification driving the per-day commit count.
type Intensity int

const (
	Light Intensity = iota
	Dark
)

// String returns the lowercase name used in progress output and tests.
func (i Intensity) String() string {
	if i == Dark {
		return "dark"
	}
	return "light"
}

// Grid is a 7x4 block of cells indexed by [dayIndex][weekIndex].
// A true cell is dark, a false cell is light.
type Grid [7][4]bool

// The two letter grids. Row = day of week (0 = same weekday as the epoch),
// column = week within the 4-week block.
var (
	gridH = Grid{
		{true, false, false, true},
		{true, false, false, true},
		{true, false, false, true},
		{true, true, true, true},
		{true, false, false, true},
		{true, false, false, true},
		{true, false, false, true},
	}

	gridE = Grid{
		{true, true, true, true},
		{true, false, false, false},
		{true, false, false, false},
		{true, true, true, false},
		{true, false, false, false},
		{true, false, false, false},
		{true, true, true, true},
	}
)

const (
	// daysPerWeek and weeksPerGlyph fix the geometry of a glyph block.
	daysPerWeek   = 7
	weeksPerGlyph = 4

	// introDays is the opening stretch during which the schedule always
	// renders H. After it, the glyph alternates every glyphCycleDays
	// starting with E.
	introDays      = 56
	glyphCycleDays = 28
)

// DefaultEpoch is the anchor date all offsets are computed from.
// It falls on a Sunday so dayIndex 0 lines up with the top calendar row.
var DefaultEpoch = time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)

// Classification is the result of resolving a single calendar date.
type Classification struct {
	Glyph     Glyph
	DayIndex  int // 0..6, row within the glyph grid
	WeekIndex int // 0..3, column within the glyph grid
	Intensity Intensity
}

// Config carries the immutable inputs of a Resolver.
type Config struct {
	// Epoch is the anchor date. Zero means DefaultEpoch.
	Epoch time.Time
}

// Resolver classifies calendar dates against the glyph schedule.
// It is safe for concurrent use; all state is immutable after construction.
type Resolver struct {
	epoch time.Time
	grids map[Glyph]Grid
}

// New creates a Resolver from the given config.
func New(cfg Config) *Resolver {
	epoch := cfg.Epoch
	if epoch.IsZero() {
		epoch = DefaultEpoch
	}
	return &Resolver{
		epoch: normalize(epoch),
		grids: map[Glyph]Grid{
			GlyphH: gridH,
			GlyphE: gridE,
		},
	}
}

// Epoch returns the resolver's anchor date at UTC midnight.
func (r *Resolver) Epoch() time.Time {
	return r.epoch
}

// Classify resolves a date to its glyph cell. The second return value is
// false for dates strictly before the epoch, which carry no pattern.
//
// All dates are normalized to UTC midnight before the elapsed-day
// arithmetic, so the time-of-day and zone of the input never shift the
// result across a day boundary.
func (r *Resolver) Classify(date time.Time) (Classification, bool) {
	elapsed := r.ElapsedDays(date)
	if elapsed < 0 {
		return Classification{}, false
	}

	glyph := glyphForDay(elapsed)
	dayIdx := elapsed % daysPerWeek
	weekIdx := (elapsed / daysPerWeek) % weeksPerGlyph

	intensity := Light
	if r.grids[glyph][dayIdx][weekIdx] {
		intensity = Dark
	}

	return Classification{
		Glyph:     glyph,
		DayIndex:  dayIdx,
		WeekIndex: weekIdx,
		Intensity: intensity,
	}, true
}

// ElapsedDays returns the whole number of calendar days between the epoch
// and the given date. Negative for dates before the epoch.
func (r *Resolver) ElapsedDays(date time.Time) int {
	d := normalize(date)
	return int(d.Sub(r.epoch).Hours() / 24)
}

// glyphForDay selects the active glyph for a given elapsed-day count.
// The first 8 weeks are always H; afterwards the glyph alternates every
// 28 days starting with E.
func glyphForDay(elapsed int) Glyph {
	if elapsed < introDays {
		return GlyphH
	}
	cycle := (elapsed - introDays) / glyphCycleDays
	if cycle%2 == 0 {
		return GlyphE
	}
	return GlyphH
}

// normalize truncates a date to UTC midnight.
func normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Normalize truncates a date to UTC midnight. Exposed so callers share the
// resolver's single timezone convention instead of inventing their own.
func Normalize(t time.Time) time.Time {
	return normalize(t)
}

// ParseDate parses a YYYY-MM-DD string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}
