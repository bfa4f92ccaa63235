package economy

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Pay = discord.SlashCommandCreate{
	Name:        "pay",
	Description: "💸 Send cash to another member",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives the cash",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "amount",
			Description: "How much (supports 5k, 1.5m, 2e3)",
			Required:    true,
		},
	},
}

func PayHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")

		if target.ID == e.User().ID {
			return utils.EH.CreateUserError(e, "You cannot pay yourself.")
		}
		if target.Bot {
			return utils.EH.CreateUserError(e, "Bots have no use for cash.")
		}

		amount, ok := economy.ParseAmount(data.String("amount"))
		if !ok || amount <= 0 {
			return utils.EH.CreateUserError(e, "That amount makes no sense. Try something like `5000` or `5k`.")
		}

		if err := b.Ledger.Transfer(*e.GuildID(), e.User().ID, target.ID, amount); err != nil {
			if errors.Is(err, store.ErrInsufficientFunds) {
				return utils.EH.CreateBusinessLogicError(e, "You don't have that much cash on hand.")
			}
			return utils.EH.CreateSystemError(e, "The payment failed. Please try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Sent **%s** to %s.",
			economy.FormatAmount(amount), target.Mention()))
	}
}
