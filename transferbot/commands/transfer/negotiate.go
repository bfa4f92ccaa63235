package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/futbolrp/transferbot/transferbot"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/negotiation"
	"github.com/futbolrp/transferbot/transferbot/utils"
)

var Offer = discord.SlashCommandCreate{
	Name:        "offer",
	Description: "📝 Offer a contract to a free agent",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The free agent you want to sign",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "team",
			Description: "The team making the offer",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "salary",
			Description: "Proposed salary (supports 5k, 1.5m)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "duration",
			Description: "Contract length, e.g. 2 seasons",
			Required:    true,
		},
	},
}

var Contract = discord.SlashCommandCreate{
	Name:        "contract",
	Description: "📝 Propose a permanent transfer for a signed player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The signed player you want to buy",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "team",
			Description: "The buying team",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "salary",
			Description: "Proposed salary (supports 5k, 1.5m)",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "duration",
			Description: "Contract length, e.g. 2 seasons",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "bonus",
			Description: "Signing bonus paid to the player",
			Required:    false,
		},
	},
}

var Loan = discord.SlashCommandCreate{
	Name:        "loan",
	Description: "🤝 Propose a loan for a signed player",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The signed player you want on loan",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "team",
			Description: "The borrowing team",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "duration",
			Description: "Loan length, e.g. half a season",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "fee",
			Description: "Loan fee paid to the player",
			Required:    false,
		},
		discord.ApplicationCommandOptionString{
			Name:        "salary",
			Description: "Salary during the loan",
			Required:    false,
		},
	},
}

var Trade = discord.SlashCommandCreate{
	Name:        "trade",
	Description: "🔄 Propose a player swap with another president",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "president",
			Description: "The president of the other club",
			Required:    true,
		},
		discord.ApplicationCommandOptionUser{
			Name:        "player1",
			Description: "The player leaving your club",
			Required:    true,
		},
		discord.ApplicationCommandOptionUser{
			Name:        "player2",
			Description: "The player joining your club",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "team",
			Description: "Your team's name for the announcement",
			Required:    true,
		},
	},
}

var Release = discord.SlashCommandCreate{
	Name:        "release",
	Description: "🆓 Start a contract termination",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The player whose contract ends",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "team",
			Description: "The releasing team",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "fee",
			Description: "Severance paid to the player",
			Required:    false,
		},
	},
}

func OfferHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		salary, ok := economy.ParseAmount(data.String("salary"))
		if !ok {
			return utils.EH.CreateUserError(e, "That salary makes no sense. Try something like `50000` or `50k`.")
		}
		form := negotiation.Form{
			Team:     data.String("team"),
			Salary:   salary,
			Duration: data.String("duration"),
		}
		return openDeal(b, e, negotiation.DealOffer, participantFromOption(data, "player"), nil, form)
	}
}

func ContractHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		salary, ok := economy.ParseAmount(data.String("salary"))
		if !ok {
			return utils.EH.CreateUserError(e, "That salary makes no sense. Try something like `50000` or `50k`.")
		}
		form := negotiation.Form{
			Team:     data.String("team"),
			Salary:   salary,
			Duration: data.String("duration"),
		}
		if raw, ok := data.OptString("bonus"); ok {
			bonus, valid := economy.ParseAmount(raw)
			if !valid {
				return utils.EH.CreateUserError(e, "That bonus makes no sense. Try something like `10k`.")
			}
			form.Bonus = bonus
		}
		return openDeal(b, e, negotiation.DealContract, participantFromOption(data, "player"), nil, form)
	}
}

func LoanHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		form := negotiation.Form{
			Team:     data.String("team"),
			Duration: data.String("duration"),
		}
		if raw, ok := data.OptString("fee"); ok {
			fee, valid := economy.ParseAmount(raw)
			if !valid {
				return utils.EH.CreateUserError(e, "That fee makes no sense. Try something like `10k`.")
			}
			form.Fee = fee
		}
		if raw, ok := data.OptString("salary"); ok {
			salary, valid := economy.ParseAmount(raw)
			if !valid {
				return utils.EH.CreateUserError(e, "That salary makes no sense. Try something like `50k`.")
			}
			form.Salary = salary
		}
		return openDeal(b, e, negotiation.DealLoan, participantFromOption(data, "player"), nil, form)
	}
}

func TradeHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		form := negotiation.Form{Team: data.String("team")}
		extra := []negotiation.Participant{
			participantFromOption(data, "player1"),
			participantFromOption(data, "player2"),
		}
		return openDeal(b, e, negotiation.DealTrade, participantFromOption(data, "president"), extra, form)
	}
}

func ReleaseHandler(b *transferbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		allowed, remaining, err := b.Cooldowns.Check(*e.GuildID(), e.User().ID, "release")
		if err != nil {
			return utils.EH.CreateSystemError(e, "Failed to check your cooldown.")
		}
		if !allowed {
			return utils.EH.CreateBusinessLogicError(e, fmt.Sprintf(
				"You already started a termination recently. Try again in **%s**.",
				formatDuration(remaining)))
		}

		data := e.SlashCommandInteractionData()
		form := negotiation.Form{Team: data.String("team")}
		if raw, ok := data.OptString("fee"); ok {
			fee, valid := economy.ParseAmount(raw)
			if !valid {
				return utils.EH.CreateUserError(e, "That fee makes no sense. Try something like `10k`.")
			}
			form.Fee = fee
		}

		if err := openDeal(b, e, negotiation.DealRelease, participantFromOption(data, "player"), nil, form); err != nil {
			return err
		}
		if err := b.Cooldowns.Stamp(*e.GuildID(), e.User().ID, "release"); err != nil {
			return err
		}
		return nil
	}
}

// openDeal starts the negotiation and answers the invoker. The channel
// itself carries the rest of the conversation.
func openDeal(b *transferbot.Bot, e *handler.CommandEvent, deal negotiation.Deal, target negotiation.Participant, extra []negotiation.Participant, form negotiation.Form) error {
	initiator := negotiation.Participant{
		ID:    e.User().ID,
		Name:  e.User().EffectiveName(),
		Roles: e.Member().RoleIDs,
	}

	sess, err := b.Negotiations.Open(*e.GuildID(), deal, initiator, target, extra, form)
	if err != nil {
		if isEligibilityError(err) {
			return utils.EH.CreateBusinessLogicError(e, capitalize(err.Error())+".")
		}
		return utils.EH.CreateSystemError(e, "Failed to open the negotiation.")
	}

	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
		"Negotiation opened in <#%s>.", sess.Channel))
}

func participantFromOption(data discord.SlashCommandInteractionData, name string) negotiation.Participant {
	member := data.Member(name)
	return negotiation.Participant{
		ID:    member.User.ID,
		Name:  member.User.EffectiveName(),
		Roles: member.RoleIDs,
	}
}

func isEligibilityError(err error) bool {
	for _, known := range []error{
		negotiation.ErrSelfTarget,
		negotiation.ErrNotDistinct,
		negotiation.ErrPeriodClosed,
		negotiation.ErrAlreadyTransferred,
		negotiation.ErrTargetNotFree,
		negotiation.ErrTargetNotPlayer,
		negotiation.ErrTargetNotPresident,
		negotiation.ErrInitiatorNotPresident,
		negotiation.ErrCannotTerminate,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
