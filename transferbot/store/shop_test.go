package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShopAddListRemove(t *testing.T) {
	s := NewShopStore(t.TempDir())

	require.NoError(t, s.AddItem(testGuild, "Golden Boot", ShopItem{Price: 5000, Category: "Trophies"}))
	require.NoError(t, s.AddItem(testGuild, "Captain Band", ShopItem{Price: 1500}))

	err := s.AddItem(testGuild, "Golden Boot", ShopItem{Price: 9999})
	require.ErrorIs(t, err, ErrItemExists)

	items, err := s.List(testGuild)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Sorted by name.
	require.Equal(t, "Captain Band", items[0].Name)
	require.Equal(t, "Golden Boot", items[1].Name)

	require.NoError(t, s.RemoveItem(testGuild, "Captain Band"))
	require.ErrorIs(t, s.RemoveItem(testGuild, "Captain Band"), ErrItemNotFound)
}

func TestShopRejectsNonPositivePrice(t *testing.T) {
	s := NewShopStore(t.TempDir())

	require.ErrorIs(t, s.AddItem(testGuild, "Freebie", ShopItem{Price: 0}), ErrInvalidAmount)
	require.ErrorIs(t, s.AddItem(testGuild, "Debt", ShopItem{Price: -10}), ErrInvalidAmount)
}

func TestShopFind(t *testing.T) {
	s := NewShopStore(t.TempDir())

	require.NoError(t, s.AddItem(testGuild, "Golden Boot", ShopItem{Price: 5000}))
	require.NoError(t, s.AddItem(testGuild, "Silver Whistle", ShopItem{Price: 800}))

	exact, err := s.Find(testGuild, "Golden Boot")
	require.NoError(t, err)
	require.Equal(t, "Golden Boot", exact.Name)

	fuzzyHit, err := s.Find(testGuild, "golden")
	require.NoError(t, err)
	require.Equal(t, "Golden Boot", fuzzyHit.Name)

	_, err = s.Find(testGuild, "nonexistent thing")
	require.ErrorIs(t, err, ErrItemNotFound)
}
