package economy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Deposit = discord.SlashCommandCreate{
	Name:        "deposit",
	Description: "🏦 Move cash into your bank",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "amount",
			Description: "How much, or 'all'",
			Required:    true,
		},
	},
}

var Withdraw = discord.SlashCommandCreate{
	Name:        "withdraw",
	Description: "🏦 Move bank funds back to cash",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "amount",
			Description: "How much, or 'all'",
			Required:    true,
		},
	},
}

func DepositHandler(b *transferbot.Bot) handler.CommandHandler {
	return bankHandler(b, true)
}

func WithdrawHandler(b *transferbot.Bot) handler.CommandHandler {
	return bankHandler(b, false)
}

func bankHandler(b *transferbot.Bot, toBank bool) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		raw := strings.TrimSpace(data.String("amount"))

		var amount int64
		if strings.EqualFold(raw, "all") {
			bal, err := b.Ledger.Balance(*e.GuildID(), e.User().ID)
			if err != nil {
				return utils.EH.CreateSystemError(e, "Failed to fetch your balance.")
			}
			if toBank {
				amount = bal.Cash
			} else {
				amount = bal.Bank
			}
			if amount == 0 {
				return utils.EH.CreateBusinessLogicError(e, "There is nothing to move.")
			}
		} else {
			var ok bool
			amount, ok = economy.ParseAmount(raw)
			if !ok || amount <= 0 {
				return utils.EH.CreateUserError(e, "That amount makes no sense. Try something like `5000`, `5k` or `all`.")
			}
		}

		var (
			bal store.Balance
			err error
		)
		if toBank {
			bal, err = b.Ledger.Deposit(*e.GuildID(), e.User().ID, amount)
		} else {
			bal, err = b.Ledger.Withdraw(*e.GuildID(), e.User().ID, amount)
		}
		if err != nil {
			if errors.Is(err, store.ErrInsufficientFunds) {
				return utils.EH.CreateBusinessLogicError(e, "You don't have that much to move.")
			}
			return utils.EH.CreateSystemError(e, "The transfer failed. Please try again later.")
		}

		verb := "Deposited"
		if !toBank {
			verb = "Withdrew"
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("%s **%s**. Cash: %s · Bank: %s",
			verb, economy.FormatAmount(amount),
			economy.FormatAmount(bal.Cash), economy.FormatAmount(bal.Bank)))
	}
}
