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

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "🛒 Buy an item from the shop",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "item",
			Description: "Item name (close matches are accepted)",
			Required:    true,
		},
	},
}

func BuyHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := e.SlashCommandInteractionData().String("item")

		item, err := b.Shop.Find(*e.GuildID(), query)
		if err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return utils.EH.CreateNotFoundError(e, "Item", query)
			}
			return utils.EH.CreateSystemError(e, "Failed to search the shop.")
		}

		if err := b.Ledger.Buy(*e.GuildID(), e.User().ID, item.Name, item.ShopItem); err != nil {
			if errors.Is(err, store.ErrInsufficientFunds) {
				return utils.EH.CreateBusinessLogicError(e, fmt.Sprintf(
					"You can't afford **%s** (%s). Check your cash with `/balance`.",
					item.Name, economy.FormatAmount(item.Price)))
			}
			return utils.EH.CreateSystemError(e, "Purchase failed.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("You bought **%s** for **%s**.",
			item.Name, economy.FormatAmount(item.Price)))
	}
}
