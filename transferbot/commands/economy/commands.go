package economy

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Balance,
	Pay,
	Deposit,
	Withdraw,
	Work,
	Shop,
	AddItem,
	RemoveItem,
	Buy,
	Inventory,
}
