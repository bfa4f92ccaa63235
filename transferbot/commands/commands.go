package commands

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/futbolrp/transferbot/transferbot/commands/admin"
	"github.com/futbolrp/transferbot/transferbot/commands/economy"
	"github.com/futbolrp/transferbot/transferbot/commands/transfer"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, transfer.Commands...)
	Commands = append(Commands, admin.Commands...)
}
