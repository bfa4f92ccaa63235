package economy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/permissions"
	"github.com/futbolrp/transferbot/transferbot/store"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "🛒 Browse the shop",
}

var AddItem = discord.SlashCommandCreate{
	Name:        "additem",
	Description: "🛒 Add an item to the shop",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Item name (unique within the shop)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "price",
			Description: "Price (supports 5k, 1.5m)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "emoji",
			Description: "Display emoji",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "category",
			Description: "Display category",
			Required:    false,
		},
	},
}

var RemoveItem = discord.SlashCommandCreate{
	Name:        "removeitem",
	Description: "🛒 Remove an item from the shop",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Item name",
			Required:    true,
		},
	},
}

func ShopHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		items, err := b.Shop.List(*e.GuildID())
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load the shop.")
		}
		if len(items) == 0 {
			return utils.EH.CreateInfoEmbed(e, "The shop is empty. An authority can stock it with `/additem`.")
		}

		// One block per category, alphabetical inside.
		byCategory := make(map[string][]store.NamedItem)
		for _, item := range items {
			cat := item.Category
			if cat == "" {
				cat = "Other"
			}
			byCategory[cat] = append(byCategory[cat], item)
		}

		categories := make([]string, 0, len(byCategory))
		for cat := range byCategory {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		var description strings.Builder
		for _, cat := range categories {
			group := byCategory[cat]
			description.WriteString(fmt.Sprintf("**%s**\n", cat))
			for _, item := range group {
				emoji := item.Emoji
				if emoji == "" {
					emoji = "▫️"
				}
				description.WriteString(fmt.Sprintf("%s %s · %s\n",
					emoji, item.Name, economy.FormatAmount(item.Price)))
			}
			description.WriteString("\n")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       config.EmojiShop + " Shop",
				Description: description.String(),
				Color:       config.InfoColor,
				Footer:      &discord.EmbedFooter{Text: "Buy with /buy <name>"},
			}},
		})
	}
}

func AddItemHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Permissions.IsAuthorized(*e.GuildID(), e.Member().RoleIDs, permissions.ActionShopManage) {
			return utils.EH.CreatePermissionError(e, "manage the shop")
		}

		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))
		if name == "" {
			return utils.EH.CreateUserError(e, "The item needs a name.")
		}

		price, ok := economy.ParseAmount(data.String("price"))
		if !ok || price <= 0 {
			return utils.EH.CreateUserError(e, "That price makes no sense. Try something like `50000` or `50k`.")
		}

		item := store.ShopItem{Price: price}
		if emoji, ok := data.OptString("emoji"); ok {
			item.Emoji = emoji
		}
		if category, ok := data.OptString("category"); ok {
			item.Category = category
		}

		if err := b.Shop.AddItem(*e.GuildID(), name, item); err != nil {
			if errors.Is(err, store.ErrItemExists) {
				return utils.EH.CreateUserError(e, fmt.Sprintf("**%s** is already in the shop.", name))
			}
			return utils.EH.CreateSystemError(e, "Failed to add the item.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Added **%s** for **%s**.",
			name, economy.FormatAmount(price)))
	}
}

func RemoveItemHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Permissions.IsAuthorized(*e.GuildID(), e.Member().RoleIDs, permissions.ActionShopManage) {
			return utils.EH.CreatePermissionError(e, "manage the shop")
		}

		name := strings.TrimSpace(e.SlashCommandInteractionData().String("name"))
		if err := b.Shop.RemoveItem(*e.GuildID(), name); err != nil {
			if errors.Is(err, store.ErrItemNotFound) {
				return utils.EH.CreateNotFoundError(e, "Item", name)
			}
			return utils.EH.CreateSystemError(e, "Failed to remove the item.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Removed **%s** from the shop.", name))
	}
}
