package admin

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Setup,
	Roles,
	ResetRoles,
	TransferPeriod,
	ResetPeriod,
	ResetHistory,
}
