package admin

import (
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/permissions"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var TransferPeriod = discord.SlashCommandCreate{
	Name:        "transferperiod",
	Description: "⚙️ Open or close the transfer window",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "state",
			Description: "Whether transfers may run",
			Required:    true,
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "open", Value: "open"},
				{Name: "close", Value: "close"},
			},
		},
	},
}

var ResetPeriod = discord.SlashCommandCreate{
	Name:        "resetperiod",
	Description: "⚙️ Clear every player's transferred mark for a new window",
}

var ResetHistory = discord.SlashCommandCreate{
	Name:        "resethistory",
	Description: "⚙️ Erase the recorded transfer history",
}

func TransferPeriodHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionPeriodControl) {
			return utils.EH.CreatePermissionError(e, "control the transfer period")
		}

		open := e.SlashCommandInteractionData().String("state") == "open"
		if err := b.Tracker.SetPeriod(*e.GuildID(), open); err != nil {
			return utils.EH.CreateSystemError(e, "Failed to update the transfer period.")
		}
		if open {
			announceFirstOpen(b, *e.GuildID())
			return utils.EH.CreateSuccessEmbed(e, "The transfer window is now **open**.")
		}
		return utils.EH.CreateSuccessEmbed(e, "The transfer window is now **closed**. Loans stay available.")
	}
}

// announceFirstOpen posts a one-time notice to the announcement channel
// the very first time a guild opens its transfer window. Later opens
// stay silent.
func announceFirstOpen(b *transferbot.Bot, guildID snowflake.ID) {
	key := fmt.Sprintf("period-opened:%s", guildID)
	if b.Tracker.Used(key) {
		return
	}

	channelID, ok := b.Roles.Get(guildID, store.SlotAnnouncementChannel)
	if !ok {
		return
	}

	var content string
	if pingID, ok := b.Roles.Get(guildID, store.SlotAnnouncementPing); ok {
		content = fmt.Sprintf("<@&%s>", pingID)
	}

	if _, err := b.Client.Rest().CreateMessage(channelID, discord.MessageCreate{
		Content: content,
		Embeds: []discord.Embed{{
			Title:       "🟢 Transfer window open",
			Description: "The first transfer window of this server has opened. Presidents can start negotiations with /offer, /contract, /loan and /trade.",
			Color:       config.SuccessColor,
		}},
	}); err != nil {
		slog.Error("Failed to announce window opening", slog.Any("error", err),
			slog.String("guild_id", guildID.String()))
		return
	}

	if err := b.Tracker.MarkUsed(key); err != nil {
		slog.Error("Failed to mark window announcement", slog.Any("error", err))
	}
}

func ResetPeriodHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionPeriodControl) {
			return utils.EH.CreatePermissionError(e, "reset the transfer period")
		}
		if err := b.Tracker.ResetPeriod(*e.GuildID()); err != nil {
			return utils.EH.CreateSystemError(e, "Failed to reset the transfer period.")
		}
		return utils.EH.CreateSuccessEmbed(e, "Transferred marks cleared. Everyone may move again.")
	}
}

func ResetHistoryHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !isAdmin(b, e, permissions.ActionHistoryReset) {
			return utils.EH.CreatePermissionError(e, "reset the history")
		}
		if err := b.History.ResetAll(*e.GuildID()); err != nil {
			return utils.EH.CreateSystemError(e, "Failed to reset the history.")
		}
		return utils.EH.CreateSuccessEmbed(e, "Transfer history erased.")
	}
}
