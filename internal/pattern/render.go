package pattern

import (
	"strings"
	"time"
)

// Cell markers for the text preview. A dot marks a day before the epoch.
const (
	darkCell  = "█"
	lightCell = "░"
	noCell    = "·"
)

// Render returns a text rendering of the schedule between start and end
// inclusive, laid out the way a contribution calendar draws it: seven rows,
// one column per week. Purely diagnostic; no writes, no commits.
func (r *Resolver) Render(start, end time.Time) string {
	start = normalize(start)
	end = normalize(end)
	if end.Before(start) {
		return ""
	}

	// Align the first column to the week containing start so rows line up
	// with weekday positions.
	firstElapsed := r.ElapsedDays(start)
	weekOfStart := floorDiv(firstElapsed, daysPerWeek)
	lastElapsed := r.ElapsedDays(end)
	weekOfEnd := floorDiv(lastElapsed, daysPerWeek)
	weeks := weekOfEnd - weekOfStart + 1

	var b strings.Builder
	for row := 0; row < daysPerWeek; row++ {
		for col := 0; col < weeks; col++ {
			elapsed := (weekOfStart+col)*daysPerWeek + row
			day := r.epoch.AddDate(0, 0, elapsed)
			if day.Before(start) || day.After(end) {
				b.WriteString(" ")
				continue
			}
			c, ok := r.Classify(day)
			switch {
			case !ok:
				b.WriteString(noCell)
			case c.Intensity == Dark:
				b.WriteString(darkCell)
			default:
				b.WriteString(lightCell)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// floorDiv divides rounding toward negative infinity, so pre-epoch days
// land in the correct week column.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
