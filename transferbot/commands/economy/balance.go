package economy

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 View cash and bank balances",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose balance to view (defaults to you)",
			Required:    false,
		},
	},
}

func BalanceHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := e.User()
		if user, ok := data.OptUser("user"); ok {
			target = user
		}

		bal, err := b.Ledger.Balance(*e.GuildID(), target.ID)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to fetch the balance. Please try again later.")
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "💰 Balance",
				Description: fmt.Sprintf("%s **Cash:** %s\n%s **Bank:** %s",
					config.EmojiCash, economy.FormatAmount(bal.Cash),
					config.EmojiBank, economy.FormatAmount(bal.Bank)),
				Color: config.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Balance of %s", target.Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
