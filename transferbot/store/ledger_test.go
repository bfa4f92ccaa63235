package store

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"
)

var (
	testGuild = snowflake.ID(100)
	alice     = snowflake.ID(1)
	bob       = snowflake.ID(2)
)

func newTestLedger(t *testing.T) *LedgerStore {
	t.Helper()
	return NewLedgerStore(t.TempDir(), 250, time.Hour)
}

func TestLedgerTransfer(t *testing.T) {
	s := newTestLedger(t)

	_, err := s.Adjust(testGuild, alice, 1000, AccountCash)
	require.NoError(t, err)

	require.NoError(t, s.Transfer(testGuild, alice, bob, 400))

	from, err := s.Balance(testGuild, alice)
	require.NoError(t, err)
	to, err := s.Balance(testGuild, bob)
	require.NoError(t, err)

	require.Equal(t, int64(600), from.Cash)
	require.Equal(t, int64(400), to.Cash)
}

func TestLedgerTransferInsufficientFundsTouchesNobody(t *testing.T) {
	s := newTestLedger(t)

	_, err := s.Adjust(testGuild, alice, 100, AccountCash)
	require.NoError(t, err)

	err = s.Transfer(testGuild, alice, bob, 500)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	from, _ := s.Balance(testGuild, alice)
	to, _ := s.Balance(testGuild, bob)
	require.Equal(t, int64(100), from.Cash)
	require.Equal(t, int64(0), to.Cash)
}

func TestLedgerTransferRejectsNonPositiveAmounts(t *testing.T) {
	s := newTestLedger(t)

	require.ErrorIs(t, s.Transfer(testGuild, alice, bob, 0), ErrInvalidAmount)
	require.ErrorIs(t, s.Transfer(testGuild, alice, bob, -5), ErrInvalidAmount)
}

func TestLedgerAdjustClampsAtZero(t *testing.T) {
	s := newTestLedger(t)

	got, err := s.Adjust(testGuild, alice, -1000, AccountCash)
	require.NoError(t, err)
	require.Equal(t, int64(0), got)

	got, err = s.Adjust(testGuild, alice, -1, AccountBank)
	require.NoError(t, err)
	require.Equal(t, int64(0), got)
}

func TestLedgerDepositWithdraw(t *testing.T) {
	s := newTestLedger(t)

	_, err := s.Adjust(testGuild, alice, 500, AccountCash)
	require.NoError(t, err)

	bal, err := s.Deposit(testGuild, alice, 300)
	require.NoError(t, err)
	require.Equal(t, Balance{Cash: 200, Bank: 300}, bal)

	bal, err = s.Withdraw(testGuild, alice, 100)
	require.NoError(t, err)
	require.Equal(t, Balance{Cash: 300, Bank: 200}, bal)

	_, err = s.Withdraw(testGuild, alice, 1000)
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestLedgerWorkCooldown(t *testing.T) {
	s := newTestLedger(t)

	earned, err := s.Work(testGuild, alice)
	require.NoError(t, err)
	require.Equal(t, int64(250), earned)

	_, err = s.Work(testGuild, alice)
	cd, ok := AsCooldown(err)
	require.True(t, ok)
	require.Greater(t, cd.Remaining, time.Duration(0))

	// The failed attempt must not pay out.
	bal, err := s.Balance(testGuild, alice)
	require.NoError(t, err)
	require.Equal(t, int64(250), bal.Cash)
}

func TestLedgerBuy(t *testing.T) {
	s := newTestLedger(t)

	item := ShopItem{Price: 300, Emoji: "⚽", Category: "Gear"}

	err := s.Buy(testGuild, alice, "Ball", item)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = s.Adjust(testGuild, alice, 1000, AccountCash)
	require.NoError(t, err)

	require.NoError(t, s.Buy(testGuild, alice, "Ball", item))
	require.NoError(t, s.Buy(testGuild, alice, "Ball", item))

	inv, err := s.Inventory(testGuild, alice)
	require.NoError(t, err)
	require.Equal(t, 2, inv["Ball"].Count)
	require.Equal(t, "Gear", inv["Ball"].Category)

	bal, _ := s.Balance(testGuild, alice)
	require.Equal(t, int64(400), bal.Cash)
}

func TestLedgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s := NewLedgerStore(dir, 250, time.Hour)
	_, err := s.Adjust(testGuild, alice, 750, AccountCash)
	require.NoError(t, err)
	_, err = s.Deposit(testGuild, alice, 250)
	require.NoError(t, err)

	reopened := NewLedgerStore(dir, 250, time.Hour)
	bal, err := reopened.Balance(testGuild, alice)
	require.NoError(t, err)
	require.Equal(t, Balance{Cash: 500, Bank: 250}, bal)
}

func TestLedgerGuildsAreIsolated(t *testing.T) {
	s := newTestLedger(t)

	otherGuild := snowflake.ID(200)
	_, err := s.Adjust(testGuild, alice, 500, AccountCash)
	require.NoError(t, err)

	bal, err := s.Balance(otherGuild, alice)
	require.NoError(t, err)
	require.Equal(t, int64(0), bal.Cash)
}
