package permissions

import (
	"errors"
	"testing"

	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/futbolrp/transferbot/transferbot/store"
)

type roleCall struct {
	op   string
	role snowflake.ID
}

type fakeMutator struct {
	calls []roleCall
	err   error
}

func (f *fakeMutator) AddMemberRole(_, _, roleID snowflake.ID, _ ...rest.RequestOpt) error {
	f.calls = append(f.calls, roleCall{"add", roleID})
	return f.err
}

func (f *fakeMutator) RemoveMemberRole(_, _, roleID snowflake.ID, _ ...rest.RequestOpt) error {
	f.calls = append(f.calls, roleCall{"remove", roleID})
	return f.err
}

var (
	guild     = snowflake.ID(100)
	member    = snowflake.ID(1)
	president = snowflake.ID(10)
	player    = snowflake.ID(11)
	freeAgent = snowflake.ID(12)
	authority = snowflake.ID(13)
)

func newTestService(t *testing.T) (*Service, *store.RoleConfigStore, *fakeMutator) {
	t.Helper()
	roles := store.NewRoleConfigStore(t.TempDir())
	mutator := &fakeMutator{}
	return New(roles, mutator), roles, mutator
}

func TestPredicatesFailClosedWhenUnconfigured(t *testing.T) {
	s, _, _ := newTestService(t)

	held := []snowflake.ID{president, player, freeAgent, authority}
	if s.IsPresident(guild, held) {
		t.Error("IsPresident true with no configuration")
	}
	if s.IsPlayer(guild, held) {
		t.Error("IsPlayer true with no configuration")
	}
	if s.IsAuthorized(guild, held, ActionSetup) {
		t.Error("IsAuthorized true with no configuration")
	}
}

func TestPredicatesMatchConfiguredRoles(t *testing.T) {
	s, roles, _ := newTestService(t)

	for slot, id := range map[store.Slot]snowflake.ID{
		store.SlotPresident:         president,
		store.SlotPlayer:            player,
		store.SlotFreeAgent:         freeAgent,
		store.SlotTransferAuthority: authority,
	} {
		if err := roles.Set(guild, slot, id); err != nil {
			t.Fatal(err)
		}
	}

	if !s.IsPresident(guild, []snowflake.ID{president}) {
		t.Error("IsPresident false for the configured role")
	}
	if s.IsPresident(guild, []snowflake.ID{player}) {
		t.Error("IsPresident true for a different role")
	}
	if !s.IsFreeAgent(guild, []snowflake.ID{freeAgent, player}) {
		t.Error("IsFreeAgent false for a member holding the role")
	}
	if !s.IsAuthorized(guild, []snowflake.ID{authority}, ActionShopManage) {
		t.Error("IsAuthorized false for the authority role")
	}
}

func TestCanTerminate(t *testing.T) {
	s, roles, _ := newTestService(t)

	termination := snowflake.ID(14)
	if err := roles.Set(guild, store.SlotPresident, president); err != nil {
		t.Fatal(err)
	}
	if err := roles.Set(guild, store.SlotUnilateralTermination, termination); err != nil {
		t.Fatal(err)
	}

	if !s.CanTerminate(guild, []snowflake.ID{president}) {
		t.Error("president cannot terminate")
	}
	if !s.CanTerminate(guild, []snowflake.ID{termination}) {
		t.Error("termination role cannot terminate")
	}
	if s.CanTerminate(guild, []snowflake.ID{player}) {
		t.Error("plain player can terminate")
	}
}

func TestSignSwapsRoles(t *testing.T) {
	s, roles, mutator := newTestService(t)

	if err := roles.Set(guild, store.SlotPlayer, player); err != nil {
		t.Fatal(err)
	}
	if err := roles.Set(guild, store.SlotFreeAgent, freeAgent); err != nil {
		t.Fatal(err)
	}

	if err := s.Sign(guild, member); err != nil {
		t.Fatal(err)
	}

	want := []roleCall{{"remove", freeAgent}, {"add", player}}
	if len(mutator.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", mutator.calls, want)
	}
	for i := range want {
		if mutator.calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, mutator.calls[i], want[i])
		}
	}
}

func TestMakeFreeSkipsUnconfiguredSlots(t *testing.T) {
	s, roles, mutator := newTestService(t)

	// Only the free-agent slot is bound; the player removal is skipped.
	if err := roles.Set(guild, store.SlotFreeAgent, freeAgent); err != nil {
		t.Fatal(err)
	}

	if err := s.MakeFree(guild, member); err != nil {
		t.Fatal(err)
	}
	if len(mutator.calls) != 1 || mutator.calls[0] != (roleCall{"add", freeAgent}) {
		t.Errorf("calls = %v, want a single free-agent add", mutator.calls)
	}
}

func TestSwapPropagatesRestErrors(t *testing.T) {
	s, roles, mutator := newTestService(t)

	if err := roles.Set(guild, store.SlotPlayer, player); err != nil {
		t.Fatal(err)
	}
	mutator.err = errors.New("missing permissions")

	if err := s.Sign(guild, member); err == nil {
		t.Error("Sign swallowed the REST error")
	}
}
