package negotiation

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
)

func dealTitle(deal Deal) string {
	switch deal {
	case DealOffer:
		return config.EmojiTransfer + " Transfer Offer"
	case DealContract:
		return config.EmojiContract + " Contract Proposal"
	case DealLoan:
		return config.EmojiLoan + " Loan Proposal"
	case DealTrade:
		return config.EmojiTransfer + " Trade Proposal"
	case DealRelease:
		return config.EmojiRelease + " Contract Termination"
	}
	return "Negotiation"
}

func dealColor(deal Deal) int {
	switch deal {
	case DealOffer:
		return config.OfferColor
	case DealContract:
		return config.ContractColor
	case DealLoan:
		return config.LoanColor
	case DealTrade:
		return config.TradeColor
	case DealRelease:
		return config.ReleaseColor
	}
	return config.EmbedDefaultColor
}

// draftEmbed renders the current proposal. Which fields show depends
// on the subtype; trades carry no salary and releases no duration.
func draftEmbed(deal Deal, form Form, initiator, target snowflake.ID) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(dealTitle(deal)).
		SetDescription(fmt.Sprintf("<@%s> → <@%s>", initiator, target)).
		SetColor(dealColor(deal)).
		SetFooter("Accept or Reject below. Only the initiator may Edit.", "").
		SetTimestamp(time.Now())

	if form.Team != "" {
		builder.AddField("Team", form.Team, true)
	}
	if form.Salary > 0 {
		builder.AddField("Salary", economy.FormatAmount(form.Salary), true)
	}
	if form.Duration != "" {
		builder.AddField("Duration", form.Duration, true)
	}
	if form.Bonus > 0 {
		builder.AddField("Signing Bonus", economy.FormatAmount(form.Bonus), true)
	}
	if form.Fee > 0 {
		builder.AddField("Fee", economy.FormatAmount(form.Fee), true)
	}
	return builder.Build()
}

// verdictEmbed recolors a draft once the negotiation concluded.
func verdictEmbed(draft discord.Embed, outcome State) discord.Embed {
	switch outcome {
	case StateAccepted:
		draft.Color = config.SuccessColor
		draft.Title = "✅ " + draft.Title
	case StateRejected:
		draft.Color = config.ErrorColor
		draft.Title = "❌ " + draft.Title
	}
	return draft
}

func announcementEmbed(sess *Session, form Form) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetColor(dealColor(sess.Deal)).
		SetTimestamp(time.Now())

	switch sess.Deal {
	case DealRelease:
		builder.SetTitle(config.EmojiRelease + " New Free Agent").
			SetDescription(fmt.Sprintf("<@%s> has been released by **%s** and is now a free agent.",
				sess.Target, form.Team))
	case DealTrade:
		builder.SetTitle(config.EmojiTransfer + " Trade Completed")
		if len(sess.Extra) >= 2 {
			builder.SetDescription(fmt.Sprintf("<@%s> and <@%s> have swapped clubs.",
				sess.Extra[0], sess.Extra[1]))
		}
	default:
		builder.SetTitle(config.EmojiTransfer + " Transfer Completed").
			SetDescription(fmt.Sprintf("<@%s> has joined **%s**.", sess.Target, form.Team))
		if form.Salary > 0 {
			builder.AddField("Salary", economy.FormatAmount(form.Salary), true)
		}
		if form.Duration != "" {
			builder.AddField("Duration", form.Duration, true)
		}
	}
	return builder.Build()
}

// draftComponents builds the one action row every proposal carries.
// The base action's kind is ignored; each button sets its own.
func draftComponents(base Action, disabled bool) []discord.ContainerComponent {
	accept := discord.NewSuccessButton("Accept", base.withKind(KindAccept).CustomID())
	reject := discord.NewDangerButton("Reject", base.withKind(KindReject).CustomID())
	edit := discord.NewSecondaryButton("Edit", base.withKind(KindEdit).CustomID())
	if disabled {
		accept = accept.AsDisabled()
		reject = reject.AsDisabled()
		edit = edit.AsDisabled()
	}
	return []discord.ContainerComponent{discord.NewActionRow(accept, reject, edit)}
}

// editModal pre-fills the structured form with the proposal's current
// values. Rows vary by subtype; Discord caps a modal at five.
func editModal(action Action, deal Deal, form Form) discord.ModalCreate {
	rows := []discord.ContainerComponent{
		discord.NewActionRow(discord.TextInputComponent{
			CustomID: "team",
			Style:    discord.TextInputStyleShort,
			Label:    "Team",
			Value:    form.Team,
			Required: true,
		}),
	}

	if deal != DealTrade && deal != DealRelease {
		rows = append(rows,
			discord.NewActionRow(discord.TextInputComponent{
				CustomID:    "salary",
				Style:       discord.TextInputStyleShort,
				Label:       "Salary",
				Value:       economy.FormatAmount(form.Salary),
				Placeholder: "e.g. 250k",
				Required:    true,
			}),
			discord.NewActionRow(discord.TextInputComponent{
				CustomID: "duration",
				Style:    discord.TextInputStyleShort,
				Label:    "Duration",
				Value:    form.Duration,
				Required: true,
			}),
		)
	}
	if deal == DealContract {
		rows = append(rows, discord.NewActionRow(discord.TextInputComponent{
			CustomID:    "bonus",
			Style:       discord.TextInputStyleShort,
			Label:       "Signing Bonus",
			Value:       economy.FormatAmount(form.Bonus),
			Placeholder: "0 for none",
			Required:    false,
		}))
	}
	if deal == DealLoan || deal == DealRelease {
		rows = append(rows, discord.NewActionRow(discord.TextInputComponent{
			CustomID:    "fee",
			Style:       discord.TextInputStyleShort,
			Label:       "Fee",
			Value:       economy.FormatAmount(form.Fee),
			Placeholder: "0 for none",
			Required:    false,
		}))
	}

	return discord.ModalCreate{
		CustomID:   action.CustomID(),
		Title:      dealTitle(deal),
		Components: rows,
	}
}
