package store

import (
	"fmt"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"
)

func TestHistoryPagination(t *testing.T) {
	s := NewTransferHistoryStore(t.TempDir())

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(testGuild, TransferRecord{
			Player: snowflake.ID(i + 1),
			Type:   TransferOffer,
			ToTeam: fmt.Sprintf("Team %d", i),
		}))
	}

	page, total, err := s.List(testGuild, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, page, 2)
	// Newest first.
	require.Equal(t, snowflake.ID(5), page[0].Player)
	require.Equal(t, snowflake.ID(4), page[1].Player)

	last, _, err := s.List(testGuild, 2, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, snowflake.ID(1), last[0].Player)

	beyond, total, err := s.List(testGuild, 10, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Empty(t, beyond)
}

func TestHistoryRecordStampsDate(t *testing.T) {
	s := NewTransferHistoryStore(t.TempDir())

	require.NoError(t, s.Record(testGuild, TransferRecord{Player: alice, Type: TransferRelease}))

	page, _, err := s.List(testGuild, 0, 1)
	require.NoError(t, err)
	require.False(t, page[0].Date.IsZero())
}

func TestHistoryResetAll(t *testing.T) {
	s := NewTransferHistoryStore(t.TempDir())

	require.NoError(t, s.Record(testGuild, TransferRecord{Player: alice, Type: TransferTrade}))
	require.NoError(t, s.ResetAll(testGuild))

	_, total, err := s.List(testGuild, 0, 10)
	require.NoError(t, err)
	require.Zero(t, total)

	// Resetting an empty guild is fine.
	require.NoError(t, s.ResetAll(testGuild))
}
