package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesFileWithHeader(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ink.log")
	j := New(path)

	created, err := j.Init()
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))
}

func TestInitIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ink.log")
	j := New(path)

	created, err := j.Init()
	require.NoError(t, err)
	require.True(t, created)

	created, err = j.Init()
	require.NoError(t, err)
	assert.False(t, created, "second init must not rewrite the file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestAppendLineFormat(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ink.log")
	j := New(path)

	_, err := j.Init()
	require.NoError(t, err)

	now := time.Date(2025, time.June, 1, 14, 30, 0, 0, time.UTC)
	target := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.Append(1, now, target))
	require.NoError(t, j.Append(2, now.Add(time.Second), target))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, "Commit 1 made at real time 2025-06-01T14:30:00Z but dated 2025-01-12", lines[1])
	assert.Equal(t, "Commit 2 made at real time 2025-06-01T14:30:01Z but dated 2025-01-12", lines[2])
}

func TestAppendNeverTruncates(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ink.log")
	j := New(path)

	_, err := j.Init()
	require.NoError(t, err)

	now := time.Now()
	target := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		require.NoError(t, j.Append(i, now, target))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(string(data), "\n"), "header plus five entries")
}

func TestAppendWithoutInitStillWrites(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ink.log")
	j := New(path)

	require.NoError(t, j.Append(1, time.Now(), time.Now()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Commit 1 "))
}
