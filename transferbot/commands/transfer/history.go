package transfer

import (
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Transfers = discord.SlashCommandCreate{
	Name:        "transfers",
	Description: "📜 Browse the transfer history",
}

var MyTransfer = discord.SlashCommandCreate{
	Name:        "mytransfer",
	Description: "📜 Show your status in the current transfer period",
}

func TransfersHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		records, total, err := b.History.List(*e.GuildID(), 0, math.MaxInt32)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load the transfer history.")
		}
		if total == 0 {
			return utils.EH.CreateInfoEmbed(e, "No transfers have been recorded yet.")
		}

		totalPages := int(math.Ceil(float64(total) / float64(config.TransfersPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * config.TransfersPerPage
				endIdx := min(startIdx+config.TransfersPerPage, total)

				var description strings.Builder
				for _, rec := range records[startIdx:endIdx] {
					description.WriteString(formatRecord(rec))
					description.WriteString("\n")
				}

				embed.
					SetTitle("📜 Transfer History").
					SetDescription(description.String()).
					SetColor(config.BackgroundColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", page+1, totalPages, total), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func formatRecord(rec store.TransferRecord) string {
	var line strings.Builder
	line.WriteString(fmt.Sprintf("%s <@%s> ", typeEmoji(rec.Type), rec.Player))
	switch rec.Type {
	case store.TransferRelease:
		line.WriteString(fmt.Sprintf("released by **%s**", rec.FromTeam))
	case store.TransferLoan:
		line.WriteString(fmt.Sprintf("loaned to **%s**", rec.ToTeam))
	default:
		line.WriteString(fmt.Sprintf("joined **%s**", rec.ToTeam))
	}
	if rec.Amount > 0 {
		line.WriteString(fmt.Sprintf(" for %s", economy.FormatAmount(rec.Amount)))
	}
	if rec.Salary > 0 {
		line.WriteString(fmt.Sprintf(" (salary %s)", economy.FormatAmount(rec.Salary)))
	}
	line.WriteString(fmt.Sprintf(" • <t:%d:d>", rec.Date.Unix()))
	return line.String()
}

func typeEmoji(t store.TransferType) string {
	switch t {
	case store.TransferOffer, store.TransferContract:
		return config.EmojiContract
	case store.TransferLoan:
		return config.EmojiLoan
	case store.TransferTrade:
		return config.EmojiTransfer
	case store.TransferRelease:
		return config.EmojiRelease
	}
	return "▫️"
}

func MyTransferHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		guild := *e.GuildID()
		open := b.Tracker.PeriodOpen(guild)

		status, done := b.Tracker.IsTransferred(guild, e.User().ID)
		if !done {
			if open {
				return utils.EH.CreateInfoEmbed(e, "You have not transferred this period. The window is **open**.")
			}
			return utils.EH.CreateInfoEmbed(e, "You have not transferred this period. The window is **closed**.")
		}

		return utils.EH.CreateInfoEmbed(e, fmt.Sprintf(
			"You completed a **%s** this period on <t:%d:D>. You cannot move again until the period resets.",
			status.Type, status.When.Unix()))
	}
}
