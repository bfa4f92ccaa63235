package store

import (
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
)

// Slot names one semantic role or channel a guild can configure. The
// store only remembers which platform ID plays which part; membership
// stays with Discord.
type Slot string

const (
	SlotPresident             Slot = "president"
	SlotPlayer                Slot = "player"
	SlotFreeAgent             Slot = "freeAgent"
	SlotTransferAuthority     Slot = "transferAuthority"
	SlotUnilateralTermination Slot = "unilateralTermination"
	SlotTransferPing          Slot = "transferPing"
	SlotFreeAgentPing         Slot = "freeAgentPing"
	SlotAnnouncementPing      Slot = "announcementPing"
	SlotBduyurPing            Slot = "bduyurPing"
	SlotAnnouncementChannel   Slot = "announcementChannel"
	SlotFreeAgentChannel      Slot = "freeAgentChannel"
	SlotTransferChannel       Slot = "transferChannel"
	SlotLogChannel            Slot = "logChannel"
)

// RoleSlots lists every configurable role slot.
var RoleSlots = []Slot{
	SlotPresident,
	SlotPlayer,
	SlotFreeAgent,
	SlotTransferAuthority,
	SlotUnilateralTermination,
	SlotTransferPing,
	SlotFreeAgentPing,
	SlotAnnouncementPing,
	SlotBduyurPing,
}

// ChannelSlots lists every configurable channel slot.
var ChannelSlots = []Slot{
	SlotAnnouncementChannel,
	SlotFreeAgentChannel,
	SlotTransferChannel,
	SlotLogChannel,
}

// ValidSlot reports whether name is a known slot.
func ValidSlot(name string) (Slot, bool) {
	for _, s := range append(append([]Slot{}, RoleSlots...), ChannelSlots...) {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

type rolesDoc map[string]map[string]snowflake.ID

func newRolesDoc() rolesDoc { return make(rolesDoc) }

// RoleConfigStore persists the per-guild slot mapping in roles.json.
// At most one ID per slot per guild.
type RoleConfigStore struct {
	file *jsonFile
}

func NewRoleConfigStore(dir string) *RoleConfigStore {
	return &RoleConfigStore{file: newJSONFile(dir, "roles.json")}
}

func (s *RoleConfigStore) Set(guild snowflake.ID, slot Slot, id snowflake.ID) error {
	return update(s.file, newRolesDoc, func(doc rolesDoc) (bool, error) {
		g, ok := doc[guild.String()]
		if !ok {
			g = make(map[string]snowflake.ID)
			doc[guild.String()] = g
		}
		g[string(slot)] = id
		return true, nil
	})
}

// Get reports the configured ID for a slot; a never-configured slot
// yields ok=false so every predicate on top of it fails closed. An
// unreadable roles file reads the same way, denying rather than
// granting, and is logged.
func (s *RoleConfigStore) Get(guild snowflake.ID, slot Slot) (snowflake.ID, bool) {
	var id snowflake.ID
	var ok bool
	if err := view(s.file, newRolesDoc, func(doc rolesDoc) error {
		if g, exists := doc[guild.String()]; exists {
			id, ok = g[string(slot)]
		}
		return nil
	}); err != nil {
		slog.Error("Failed to read role config file", slog.Any("error", err))
	}
	return id, ok && id != 0
}

// All reports the guild's full slot mapping.
func (s *RoleConfigStore) All(guild snowflake.ID) (map[Slot]snowflake.ID, error) {
	out := make(map[Slot]snowflake.ID)
	err := view(s.file, newRolesDoc, func(doc rolesDoc) error {
		for k, v := range doc[guild.String()] {
			out[Slot(k)] = v
		}
		return nil
	})
	return out, err
}

// Reset clears the entire guild entry.
func (s *RoleConfigStore) Reset(guild snowflake.ID) error {
	return update(s.file, newRolesDoc, func(doc rolesDoc) (bool, error) {
		if _, ok := doc[guild.String()]; !ok {
			return false, nil
		}
		delete(doc, guild.String())
		return true, nil
	})
}
