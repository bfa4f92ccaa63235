package transfer

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Offer,
	Contract,
	Loan,
	Trade,
	Release,
	Transfers,
	MyTransfer,
}
