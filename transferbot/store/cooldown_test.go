package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCooldownCheckAndStamp(t *testing.T) {
	s := NewCooldownStore(t.TempDir(), time.Hour)

	allowed, _, err := s.Check(testGuild, alice, "release")
	require.NoError(t, err)
	require.True(t, allowed)

	require.NoError(t, s.Stamp(testGuild, alice, "release"))

	allowed, remaining, err := s.Check(testGuild, alice, "release")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Greater(t, remaining, time.Duration(0))

	// Other users and other commands are unaffected.
	allowed, _, _ = s.Check(testGuild, bob, "release")
	require.True(t, allowed)
	allowed, _, _ = s.Check(testGuild, alice, "work")
	require.True(t, allowed)
}

func TestCooldownExpires(t *testing.T) {
	s := NewCooldownStore(t.TempDir(), time.Nanosecond)

	require.NoError(t, s.Stamp(testGuild, alice, "release"))
	time.Sleep(time.Millisecond)

	allowed, _, err := s.Check(testGuild, alice, "release")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestCooldownCompact(t *testing.T) {
	s := NewCooldownStore(t.TempDir(), time.Nanosecond)

	require.NoError(t, s.Stamp(testGuild, alice, "release"))
	time.Sleep(time.Millisecond)
	require.NoError(t, s.Compact())

	// A compacted entry behaves like one that never existed.
	allowed, _, err := s.Check(testGuild, alice, "release")
	require.NoError(t, err)
	require.True(t, allowed)
}
