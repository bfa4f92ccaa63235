// Package permissions answers "who may do what" for the transfer game.
// Role membership lives with Discord; the service only consults the
// configured slot mapping and a member's live role set.
package permissions

import (
	"log/slog"

	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/futbolrp/transferbot/transferbot/store"
)

// Action is an administrative capability gated on the transfer
// authority role.
type Action string

const (
	ActionSetup         Action = "setup"
	ActionShopManage    Action = "shop-manage"
	ActionHistoryReset  Action = "history-reset"
	ActionPeriodControl Action = "period-control"
)

// RoleMutator is the slice of the platform REST surface the service
// needs to move members between roles. rest.Rest satisfies it.
type RoleMutator interface {
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	RemoveMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
}

// Service evaluates role predicates and performs the two role
// mutations the game needs (sign, release).
type Service struct {
	roles *store.RoleConfigStore
	rest  RoleMutator
}

func New(roles *store.RoleConfigStore, rest RoleMutator) *Service {
	return &Service{roles: roles, rest: rest}
}

func (s *Service) holds(guild snowflake.ID, memberRoles []snowflake.ID, slot store.Slot) bool {
	want, ok := s.roles.Get(guild, slot)
	if !ok {
		// Unconfigured slot: fail closed.
		return false
	}
	for _, id := range memberRoles {
		if id == want {
			return true
		}
	}
	return false
}

func (s *Service) IsPresident(guild snowflake.ID, memberRoles []snowflake.ID) bool {
	return s.holds(guild, memberRoles, store.SlotPresident)
}

func (s *Service) IsPlayer(guild snowflake.ID, memberRoles []snowflake.ID) bool {
	return s.holds(guild, memberRoles, store.SlotPlayer)
}

func (s *Service) IsFreeAgent(guild snowflake.ID, memberRoles []snowflake.ID) bool {
	return s.holds(guild, memberRoles, store.SlotFreeAgent)
}

func (s *Service) IsTransferAuthority(guild snowflake.ID, memberRoles []snowflake.ID) bool {
	return s.holds(guild, memberRoles, store.SlotTransferAuthority)
}

func (s *Service) CanTerminate(guild snowflake.ID, memberRoles []snowflake.ID) bool {
	return s.IsPresident(guild, memberRoles) || s.holds(guild, memberRoles, store.SlotUnilateralTermination)
}

// IsAuthorized gates administrative actions on the transfer authority
// role. All actions currently share the one gate; the action is kept
// in the signature for call-site clarity and the audit log.
func (s *Service) IsAuthorized(guild snowflake.ID, memberRoles []snowflake.ID, action Action) bool {
	ok := s.IsTransferAuthority(guild, memberRoles)
	if !ok {
		slog.Debug("Authorization denied",
			slog.String("type", "sys"),
			slog.String("action", string(action)),
			slog.String("guild_id", guild.String()))
	}
	return ok
}

// MakeFree removes the player role and adds the free-agent role.
// Each half is best-effort: an unconfigured slot is skipped silently
// rather than failing the whole mutation.
func (s *Service) MakeFree(guild, user snowflake.ID) error {
	return s.swap(guild, user, store.SlotPlayer, store.SlotFreeAgent)
}

// Sign is the reverse of MakeFree: free agent out, player in.
func (s *Service) Sign(guild, user snowflake.ID) error {
	return s.swap(guild, user, store.SlotFreeAgent, store.SlotPlayer)
}

func (s *Service) swap(guild, user snowflake.ID, remove, add store.Slot) error {
	if roleID, ok := s.roles.Get(guild, remove); ok {
		if err := s.rest.RemoveMemberRole(guild, user, roleID); err != nil {
			return err
		}
	}
	if roleID, ok := s.roles.Get(guild, add); ok {
		if err := s.rest.AddMemberRole(guild, user, roleID); err != nil {
			return err
		}
	}
	return nil
}
