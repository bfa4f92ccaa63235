package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"
)

func TestRoleConfigSetGetReset(t *testing.T) {
	s := NewRoleConfigStore(t.TempDir())

	_, ok := s.Get(testGuild, SlotPresident)
	require.False(t, ok)

	roleID := snowflake.ID(42)
	require.NoError(t, s.Set(testGuild, SlotPresident, roleID))

	got, ok := s.Get(testGuild, SlotPresident)
	require.True(t, ok)
	require.Equal(t, roleID, got)

	all, err := s.All(testGuild)
	require.NoError(t, err)
	require.Equal(t, map[Slot]snowflake.ID{SlotPresident: roleID}, all)

	require.NoError(t, s.Reset(testGuild))
	_, ok = s.Get(testGuild, SlotPresident)
	require.False(t, ok)
}

func TestRoleConfigCorruptFileDenies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roles.json"), []byte("{nope"), 0o644))

	s := NewRoleConfigStore(dir)
	_, ok := s.Get(testGuild, SlotPresident)
	require.False(t, ok)
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		name  string
		want  Slot
		valid bool
	}{
		{"president", SlotPresident, true},
		{"transferChannel", SlotTransferChannel, true},
		{"logChannel", SlotLogChannel, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidSlot(tt.name)
			if ok != tt.valid {
				t.Errorf("ValidSlot(%q) ok = %v, want %v", tt.name, ok, tt.valid)
			}
			if got != tt.want {
				t.Errorf("ValidSlot(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
