package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerPeriodAndMarks(t *testing.T) {
	s := NewTrackerStore(t.TempDir())

	// Closed until someone opens it.
	require.False(t, s.PeriodOpen(testGuild))

	require.NoError(t, s.SetPeriod(testGuild, true))
	require.True(t, s.PeriodOpen(testGuild))

	_, done := s.IsTransferred(testGuild, alice)
	require.False(t, done)

	require.NoError(t, s.MarkTransferred(testGuild, alice, TransferContract))
	status, done := s.IsTransferred(testGuild, alice)
	require.True(t, done)
	require.Equal(t, TransferContract, status.Type)
	require.False(t, status.When.IsZero())

	// Reset clears the marks but leaves the window state alone.
	require.NoError(t, s.ResetPeriod(testGuild))
	_, done = s.IsTransferred(testGuild, alice)
	require.False(t, done)
	require.True(t, s.PeriodOpen(testGuild))
}

func TestTrackerUsedKeys(t *testing.T) {
	s := NewTrackerStore(t.TempDir())

	require.False(t, s.Used("100:1:announce"))
	require.NoError(t, s.MarkUsed("100:1:announce"))
	require.True(t, s.Used("100:1:announce"))

	// Marking twice is a no-op, not an error.
	require.NoError(t, s.MarkUsed("100:1:announce"))
}

func TestTrackerCorruptFileFailsClosed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracker.json"), []byte("{nope"), 0o644))

	s := NewTrackerStore(dir)

	// An unreadable file blocks transfers instead of allowing them.
	require.False(t, s.PeriodOpen(testGuild))
	_, done := s.IsTransferred(testGuild, alice)
	require.False(t, done)
	require.False(t, s.Used("100:1:announce"))
}
