package admin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/permissions"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Setup = discord.SlashCommandCreate{
	Name:        "setup",
	Description: "⚙️ Bind a role or channel to one of the bot's slots",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "slot",
			Description: "Which slot to configure",
			Required:    true,
			Choices:     slotChoices(),
		},
		discord.ApplicationCommandOptionRole{
			Name:        "role",
			Description: "Role to bind (role slots only)",
			Required:    false,
		},
		discord.ApplicationCommandOptionChannel{
			Name:        "channel",
			Description: "Channel to bind (channel slots only)",
			Required:    false,
		},
	},
}

var Roles = discord.SlashCommandCreate{
	Name:        "roles",
	Description: "⚙️ Show the configured roles and channels",
}

var ResetRoles = discord.SlashCommandCreate{
	Name:        "resetroles",
	Description: "⚙️ Clear every configured role and channel",
}

func slotChoices() []discord.ApplicationCommandOptionChoiceString {
	var choices []discord.ApplicationCommandOptionChoiceString
	for _, s := range store.RoleSlots {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  string(s) + " (role)",
			Value: string(s),
		})
	}
	for _, s := range store.ChannelSlots {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  string(s) + " (channel)",
			Value: string(s),
		})
	}
	return choices
}

// isAdmin accepts the transfer authority role or a Discord
// administrator. The latter keeps a fresh guild from locking itself
// out before any slot is bound.
func isAdmin(b *transferbot.Bot, e *handler.CommandEvent, action permissions.Action) bool {
	if e.Member().Permissions.Has(discord.PermissionAdministrator) {
		return true
	}
	return b.Permissions.IsAuthorized(*e.GuildID(), e.Member().RoleIDs, action)
}

func isChannelSlot(slot store.Slot) bool {
	for _, s := range store.ChannelSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func SetupHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionSetup) {
			return utils.EH.CreatePermissionError(e, "configure the bot")
		}

		data := e.SlashCommandInteractionData()
		slot, ok := store.ValidSlot(data.String("slot"))
		if !ok {
			return utils.EH.CreateUserError(e, "Unknown slot.")
		}

		if isChannelSlot(slot) {
			channel, ok := data.OptChannel("channel")
			if !ok {
				return utils.EH.CreateUserError(e, fmt.Sprintf("`%s` is a channel slot. Pass the `channel` option.", slot))
			}
			if err := b.Roles.Set(*e.GuildID(), slot, channel.ID); err != nil {
				return utils.EH.CreateSystemError(e, "Failed to save the configuration.")
			}
			return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Bound `%s` to <#%s>.", slot, channel.ID))
		}

		role, ok := data.OptRole("role")
		if !ok {
			return utils.EH.CreateUserError(e, fmt.Sprintf("`%s` is a role slot. Pass the `role` option.", slot))
		}
		if err := b.Roles.Set(*e.GuildID(), slot, role.ID); err != nil {
			return utils.EH.CreateSystemError(e, "Failed to save the configuration.")
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Bound `%s` to <@&%s>.", slot, role.ID))
	}
}

func RolesHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionSetup) {
			return utils.EH.CreatePermissionError(e, "view the configuration")
		}

		bound, err := b.Roles.All(*e.GuildID())
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load the configuration.")
		}

		var description strings.Builder
		writeSlots := func(slots []store.Slot, mention func(id string) string) {
			names := make([]string, 0, len(slots))
			for _, s := range slots {
				names = append(names, string(s))
			}
			sort.Strings(names)
			for _, name := range names {
				if id, ok := bound[store.Slot(name)]; ok {
					description.WriteString(fmt.Sprintf("`%s` → %s\n", name, mention(id.String())))
				} else {
					description.WriteString(fmt.Sprintf("`%s` → *not set*\n", name))
				}
			}
		}

		description.WriteString("**Roles**\n")
		writeSlots(store.RoleSlots, func(id string) string { return "<@&" + id + ">" })
		description.WriteString("\n**Channels**\n")
		writeSlots(store.ChannelSlots, func(id string) string { return "<#" + id + ">" })

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "⚙️ Configuration",
				Description: description.String(),
				Color:       config.BackgroundColor,
			}},
		})
	}
}

func ResetRolesHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionSetup) {
			return utils.EH.CreatePermissionError(e, "reset the configuration")
		}
		if err := b.Roles.Reset(*e.GuildID()); err != nil {
			return utils.EH.CreateSystemError(e, "Failed to reset the configuration.")
		}
		return utils.EH.CreateSuccessEmbed(e, "Every role and channel binding was cleared.")
	}
}
