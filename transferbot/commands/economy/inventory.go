package economy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Inventory = discord.SlashCommandCreate{
	Name:        "inventory",
	Description: "🎒 Show what you own",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose inventory to show (defaults to you)",
			Required:    false,
		},
	},
}

func InventoryHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = u
		}

		inv, err := b.Ledger.Inventory(*e.GuildID(), target.ID)
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to load the inventory.")
		}
		if len(inv) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s owns nothing yet.", target.Mention()))
		}

		type ownedItem struct {
			name     string
			count    int
			emoji    string
			category string
		}
		items := make([]ownedItem, 0, len(inv))
		for name, line := range inv {
			items = append(items, ownedItem{name, line.Count, line.Emoji, line.Category})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].category != items[j].category {
				return items[i].category < items[j].category
			}
			return items[i].name < items[j].name
		})

		var description strings.Builder
		lastCategory := "\x00"
		for _, item := range items {
			if item.category != lastCategory {
				cat := item.category
				if cat == "" {
					cat = "Other"
				}
				description.WriteString(fmt.Sprintf("**%s**\n", cat))
				lastCategory = item.category
			}
			emoji := item.emoji
			if emoji == "" {
				emoji = "▫️"
			}
			description.WriteString(fmt.Sprintf("%s %s ×%d\n", emoji, item.name, item.count))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🎒 %s's Inventory", target.EffectiveName()),
				Description: description.String(),
				Color:       config.BackgroundColor,
			}},
		})
	}
}
