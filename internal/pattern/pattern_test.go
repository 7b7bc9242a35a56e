package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyBeforeEpoch(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	for _, d := range []time.Time{
		date(2024, time.January, 1),
		date(2025, time.January, 11),
		DefaultEpoch.AddDate(0, 0, -1),
	} {
		_, ok := r.Classify(d)
		assert.False(t, ok, "date %s is before the epoch", d.Format("2006-01-02"))
	}
}

func TestClassifyEpochCell(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	c, ok := r.Classify(date(2025, time.January, 12))
	require.True(t, ok)
	assert.Equal(t, GlyphH, c.Glyph)
	assert.Equal(t, 0, c.DayIndex)
	assert.Equal(t, 0, c.WeekIndex)
	assert.Equal(t, Dark, c.Intensity)
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	d := date(2025, time.March, 3)
	first, ok := r.Classify(d)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := r.Classify(d)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestClassifyIgnoresTimeOfDayAndZone(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	base := date(2025, time.February, 1)
	late := time.Date(2025, time.February, 1, 23, 59, 59, 0, time.UTC)

	want, ok := r.Classify(base)
	require.True(t, ok)
	got, ok := r.Classify(late)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestGlyphAlternation(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	cases := []struct {
		elapsedLo, elapsedHi int
		want                 Glyph
	}{
		{0, 56, GlyphH},
		{56, 84, GlyphE},
		{84, 112, GlyphH},
		{112, 140, GlyphE},
		{140, 168, GlyphH},
	}

	for _, tc := range cases {
		for elapsed := tc.elapsedLo; elapsed < tc.elapsedHi; elapsed++ {
			c, ok := r.Classify(DefaultEpoch.AddDate(0, 0, elapsed))
			require.True(t, ok)
			assert.Equal(t, tc.want, c.Glyph, "elapsed day %d", elapsed)
		}
	}
}

func TestIndexCycling(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	for elapsed := 0; elapsed < 200; elapsed++ {
		c, ok := r.Classify(DefaultEpoch.AddDate(0, 0, elapsed))
		require.True(t, ok)
		assert.Equal(t, elapsed%7, c.DayIndex, "elapsed day %d", elapsed)
		assert.Equal(t, (elapsed/7)%4, c.WeekIndex, "elapsed day %d", elapsed)
	}
}

func TestCustomEpoch(t *testing.T) {
	t.Parallel()
	epoch := date(2024, time.June, 2)
	r := New(Config{Epoch: epoch})

	assert.Equal(t, epoch, r.Epoch())

	_, ok := r.Classify(epoch.AddDate(0, 0, -1))
	assert.False(t, ok)

	c, ok := r.Classify(epoch)
	require.True(t, ok)
	assert.Equal(t, GlyphH, c.Glyph)
	assert.Equal(t, Dark, c.Intensity)
}

func TestElapsedDays(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	assert.Equal(t, 0, r.ElapsedDays(DefaultEpoch))
	assert.Equal(t, 1, r.ElapsedDays(DefaultEpoch.AddDate(0, 0, 1)))
	assert.Equal(t, -1, r.ElapsedDays(DefaultEpoch.AddDate(0, 0, -1)))
	assert.Equal(t, 365, r.ElapsedDays(date(2026, time.January, 12)))
}

func TestGridShapes(t *testing.T) {
	t.Parallel()

	// Both glyphs keep their left vertical stroke dark all the way down.
	for day := 0; day < 7; day++ {
		assert.True(t, gridH[day][0], "H day %d week 0", day)
		assert.True(t, gridE[day][0], "E day %d week 0", day)
	}

	// H crossbar on day 3, E open right edge mid-letter.
	assert.True(t, gridH[3][1])
	assert.True(t, gridH[3][2])
	assert.False(t, gridE[3][3])
	assert.True(t, gridE[0][3])
	assert.True(t, gridE[6][3])
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-01-12")
	require.NoError(t, err)
	assert.Equal(t, DefaultEpoch, Normalize(d))

	_, err = ParseDate("12/01/2025")
	assert.Error(t, err)
	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	// One full H block: 4 weeks from the epoch.
	out := r.Render(DefaultEpoch, DefaultEpoch.AddDate(0, 0, 27))
	lines := splitLines(out)
	require.Len(t, lines, 7)
	assert.Equal(t, "█░░█", lines[0])
	assert.Equal(t, "████", lines[3])
	assert.Equal(t, "█░░█", lines[6])
}

func TestRenderBeforeEpoch(t *testing.T) {
	t.Parallel()
	r := New(Config{})

	out := r.Render(DefaultEpoch.AddDate(0, 0, -7), DefaultEpoch.AddDate(0, 0, -1))
	for _, line := range splitLines(out) {
		assert.Equal(t, "·", line)
	}
}

func TestRenderEmptyRange(t *testing.T) {
	t.Parallel()
	r := New(Config{})
	assert.Empty(t, r.Render(DefaultEpoch, DefaultEpoch.AddDate(0, 0, -1)))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
