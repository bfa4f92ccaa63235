package economy

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Work = discord.SlashCommandCreate{
	Name:        "work",
	Description: "💼 Put in a shift and earn some cash",
}

func WorkHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		earned, err := b.Ledger.Work(*e.GuildID(), e.User().ID)
		if err != nil {
			if cd, ok := store.AsCooldown(err); ok {
				return utils.EH.CreateBusinessLogicError(e,
					fmt.Sprintf("You need to rest for **%s** before working again.",
						cd.Remaining.Round(time.Second)))
			}
			return utils.EH.CreateSystemError(e, "Work fell through. Please try again later.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: config.EmojiWork + " Shift Complete",
				Description: fmt.Sprintf("You earned **%s**. Come back after your break.",
					economy.FormatAmount(earned)),
				Color: config.SuccessColor,
			}},
		})
	}
}
