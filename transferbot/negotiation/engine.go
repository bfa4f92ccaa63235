// Package negotiation drives the transfer lifecycle: a scoped private
// channel, an editable proposal message, and a terminal accept or
// reject that mutates roles, announces the deal and tears the channel
// down.
package negotiation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/futbolrp/transferbot/transferbot/config"
	"github.com/futbolrp/transferbot/transferbot/economy"
	"github.com/futbolrp/transferbot/transferbot/permissions"
	"github.com/futbolrp/transferbot/transferbot/store"
)

// Eligibility failures surfaced to the user before any channel exists.
var (
	ErrSelfTarget            = errors.New("you cannot start a negotiation with yourself")
	ErrNotDistinct           = errors.New("all participants must be different members")
	ErrPeriodClosed          = errors.New("the transfer period is closed")
	ErrAlreadyTransferred    = errors.New("this player already transferred during the open period")
	ErrTargetNotFree         = errors.New("the target must be a free agent")
	ErrTargetNotPlayer       = errors.New("the target must hold the player role")
	ErrTargetNotPresident    = errors.New("the counterpart must be a club president")
	ErrInitiatorNotPresident = errors.New("only a club president may start this negotiation")
	ErrCannotTerminate       = errors.New("you are not allowed to terminate contracts")
)

// Participant is the slice of a guild member the engine needs: who
// they are and which roles they hold right now.
type Participant struct {
	ID    snowflake.ID
	Name  string
	Roles []snowflake.ID
}

// Config tunes the lifecycle timers and the channel grouping.
type Config struct {
	TTL      time.Duration
	Grace    time.Duration
	Category string
}

// Engine owns every live negotiation.
type Engine struct {
	client   bot.Client
	cfg      Config
	perms    *permissions.Service
	roles    *store.RoleConfigStore
	ledger   *store.LedgerStore
	history  *store.TransferHistoryStore
	tracker  *store.TrackerStore
	sessions *Sessions
	dedup    *Deduper

	categoryMu  sync.Mutex
	categoryIDs map[snowflake.ID]snowflake.ID
}

func NewEngine(
	client bot.Client,
	cfg Config,
	perms *permissions.Service,
	roles *store.RoleConfigStore,
	ledger *store.LedgerStore,
	history *store.TransferHistoryStore,
	tracker *store.TrackerStore,
) *Engine {
	return &Engine{
		client:      client,
		cfg:         cfg,
		perms:       perms,
		roles:       roles,
		ledger:      ledger,
		history:     history,
		tracker:     tracker,
		sessions:    NewSessions(config.SessionCacheSize),
		dedup:       NewDeduper(config.DedupCacheSize, config.DedupWindow),
		categoryIDs: make(map[snowflake.ID]snowflake.ID),
	}
}

// Sessions exposes the live-session index to the sweep.
func (e *Engine) Sessions() *Sessions { return e.sessions }

// Validate applies every eligibility rule that must hold before a
// channel is created. A failure here costs nothing to undo.
func (e *Engine) Validate(guild snowflake.ID, deal Deal, initiator, target Participant, extra ...Participant) error {
	if initiator.ID == target.ID {
		return ErrSelfTarget
	}
	seen := map[snowflake.ID]struct{}{initiator.ID: {}, target.ID: {}}
	for _, p := range extra {
		if _, dup := seen[p.ID]; dup {
			return ErrNotDistinct
		}
		seen[p.ID] = struct{}{}
	}

	switch deal {
	case DealRelease:
		if !e.perms.CanTerminate(guild, initiator.Roles) {
			return ErrCannotTerminate
		}
	default:
		if !e.perms.IsPresident(guild, initiator.Roles) {
			return ErrInitiatorNotPresident
		}
	}

	// Loans stay open while the window is closed; everything else is
	// gated guild-wide.
	if deal != DealLoan && !e.tracker.PeriodOpen(guild) {
		return ErrPeriodClosed
	}

	switch deal {
	case DealOffer:
		if !e.perms.IsFreeAgent(guild, target.Roles) {
			return ErrTargetNotFree
		}
	case DealContract, DealLoan:
		if !e.perms.IsPlayer(guild, target.Roles) {
			return ErrTargetNotPlayer
		}
	case DealTrade:
		// The counterpart president is the one who accepts; a target
		// without the president role could wave the swap through.
		if !e.perms.IsPresident(guild, target.Roles) {
			return ErrTargetNotPresident
		}
		for _, p := range extra {
			if !e.perms.IsPlayer(guild, p.Roles) {
				return ErrTargetNotPlayer
			}
		}
	case DealRelease:
		if !e.perms.IsPlayer(guild, target.Roles) {
			return ErrTargetNotPlayer
		}
	}

	if deal != DealRelease {
		moving := []Participant{target}
		if deal == DealTrade {
			moving = extra
		}
		for _, p := range moving {
			if _, done := e.tracker.IsTransferred(guild, p.ID); done {
				return ErrAlreadyTransferred
			}
		}
	}
	return nil
}

// Open runs the eligibility checks, creates the participant-scoped
// channel, posts the draft proposal and arms the expiry timer.
func (e *Engine) Open(guild snowflake.ID, deal Deal, initiator, target Participant, extra []Participant, form Form) (*Session, error) {
	if err := e.Validate(guild, deal, initiator, target, extra...); err != nil {
		return nil, err
	}

	overwrites := []discord.PermissionOverwrite{
		discord.RolePermissionOverwrite{
			// @everyone shares its ID with the guild.
			RoleID: guild,
			Deny:   discord.PermissionViewChannel,
		},
		discord.MemberPermissionOverwrite{
			UserID: e.client.ID(),
			Allow:  discord.PermissionViewChannel | discord.PermissionSendMessages,
		},
	}
	for _, p := range append([]Participant{initiator, target}, extra...) {
		overwrites = append(overwrites, discord.MemberPermissionOverwrite{
			UserID: p.ID,
			Allow:  discord.PermissionViewChannel | discord.PermissionSendMessages,
		})
	}

	create := discord.GuildTextChannelCreate{
		Name:                 channelName(deal, target.Name),
		PermissionOverwrites: overwrites,
	}
	if parentID, ok := e.categoryID(guild); ok {
		create.ParentID = parentID
	}

	channel, err := e.client.Rest().CreateGuildChannel(guild, create)
	if err != nil {
		return nil, fmt.Errorf("failed to create negotiation channel: %w", err)
	}

	sess := &Session{
		Deal:      deal,
		Guild:     guild,
		Channel:   channel.ID(),
		Initiator: initiator.ID,
		Target:    target.ID,
		CreatedAt: time.Now(),
		state:     StateInitiated,
		form:      form,
	}
	for _, p := range extra {
		sess.Extra = append(sess.Extra, p.ID)
	}

	action := Action{Deal: deal, Initiator: initiator.ID, Target: target.ID, Extra: sess.Extra}
	msg, err := e.client.Rest().CreateMessage(channel.ID(), discord.MessageCreate{
		Content:    fmt.Sprintf("%s %s", initiator.mention(), target.mention()),
		Embeds:     []discord.Embed{draftEmbed(deal, form, initiator.ID, target.ID)},
		Components: draftComponents(action, false),
	})
	if err != nil {
		// The channel is useless without its proposal; reclaim it.
		e.deleteChannel(channel.ID())
		return nil, fmt.Errorf("failed to post proposal: %w", err)
	}

	sess.Message = msg.ID
	if err := sess.Transition(StateDrafted); err != nil {
		return nil, err
	}
	e.sessions.Put(sess)

	// Armed unconditionally; the delete underneath is idempotent, so a
	// race with an accept or reject teardown is harmless.
	time.AfterFunc(e.cfg.TTL, func() { e.Expire(sess.Channel) })

	slog.Info("Negotiation opened",
		slog.String("type", "sys"),
		slog.String("deal", string(deal)),
		slog.String("guild_id", guild.String()),
		slog.String("channel_id", channel.ID().String()))
	return sess, nil
}

func (e *Engine) HandleAccept(event *handler.ComponentEvent) error {
	return e.conclude(event, KindAccept)
}

func (e *Engine) HandleReject(event *handler.ComponentEvent) error {
	return e.conclude(event, KindReject)
}

func (e *Engine) conclude(event *handler.ComponentEvent, kind Kind) error {
	action, err := ParseCustomID(event.Data.CustomID())
	if err != nil {
		return ephemeral(event, "This button is no longer valid.")
	}

	if !e.dedup.FirstClick(event.Message.ID, kind, event.User().ID) {
		return ephemeral(event, "You already clicked that. Give it a moment.")
	}

	// Only the designated counter-party decides; the initiator and any
	// bystander the channel leaks to are rejected.
	if !action.mayConclude(event.User().ID) {
		return ephemeral(event, "Only the other party may respond to this proposal.")
	}

	sess, ok := e.sessions.Get(event.ChannelID())
	if !ok {
		return ephemeral(event, "This negotiation is no longer active.")
	}

	next := StateAccepted
	if kind == KindReject {
		next = StateRejected
	}
	if err := sess.Transition(next); err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return ephemeral(event, "This negotiation has already concluded.")
		}
		return err
	}

	// Disabling the buttons first blocks double submission while the
	// side effects run.
	disabled := draftComponents(action, true)
	verdict := draftEmbed(sess.Deal, sess.Form(), sess.Initiator, sess.Target)
	if err := event.UpdateMessage(discord.MessageUpdate{
		Embeds:     &[]discord.Embed{verdictEmbed(verdict, next)},
		Components: &disabled,
	}); err != nil {
		return err
	}

	if next == StateAccepted {
		e.completeAccept(sess)
	}

	slog.Info("Negotiation concluded",
		slog.String("type", "sys"),
		slog.String("deal", string(sess.Deal)),
		slog.String("outcome", next.String()),
		slog.String("guild_id", sess.Guild.String()))

	e.audit(sess, next)
	e.teardown(sess.Channel)
	return nil
}

// audit posts a one-line verdict to the guild's log channel, when one
// is configured. Failures only log.
func (e *Engine) audit(sess *Session, outcome State) {
	logID, ok := e.roles.Get(sess.Guild, store.SlotLogChannel)
	if !ok {
		return
	}
	deal := string(sess.Deal)
	line := fmt.Sprintf("%s negotiation between <@%s> and <@%s>: **%s**",
		strings.ToUpper(deal[:1])+deal[1:], sess.Initiator, sess.Target, outcome)
	if _, err := e.client.Rest().CreateMessage(logID, discord.MessageCreate{Content: line}); err != nil {
		slog.Warn("Failed to write negotiation audit line", slog.Any("error", err),
			slog.String("guild_id", sess.Guild.String()))
	}
}

// completeAccept runs the subtype side effects. Nothing here rolls
// back: a failed announcement after a successful role mutation leaves
// the two inconsistent and only logs.
func (e *Engine) completeAccept(sess *Session) {
	form := sess.Form()

	switch sess.Deal {
	case DealRelease:
		if err := e.perms.MakeFree(sess.Guild, sess.Target); err != nil {
			slog.Error("Failed to free released player", slog.Any("error", err),
				slog.String("guild_id", sess.Guild.String()))
		}
	case DealOffer, DealContract:
		if err := e.perms.Sign(sess.Guild, sess.Target); err != nil {
			slog.Error("Failed to sign player", slog.Any("error", err),
				slog.String("guild_id", sess.Guild.String()))
		}
	}

	// Signing bonuses and loan fees move cash from the initiating
	// president to the player. Insufficient funds skip the payment
	// rather than undo the accepted deal.
	if payout := form.Bonus + form.Fee; payout > 0 {
		if err := e.ledger.Transfer(sess.Guild, sess.Initiator, sess.Target, payout); err != nil {
			slog.Warn("Accepted deal payout skipped", slog.Any("error", err),
				slog.String("guild_id", sess.Guild.String()))
		}
	}

	e.recordHistory(sess, form)
	e.markTransferred(sess)
	e.announce(sess, form)
}

func (e *Engine) recordHistory(sess *Session, form Form) {
	records := []store.TransferRecord{{
		Player: sess.Target,
		Type:   store.TransferType(sess.Deal),
		ToTeam: form.Team,
		Amount: form.Fee,
		Salary: form.Salary,
	}}
	if sess.Deal == DealTrade && len(sess.Extra) >= 2 {
		records = []store.TransferRecord{
			{Player: sess.Extra[0], Type: store.TransferTrade, ToTeam: form.Team},
			{Player: sess.Extra[1], Type: store.TransferTrade, FromTeam: form.Team},
		}
	}
	if sess.Deal == DealRelease {
		records[0].ToTeam = ""
		records[0].FromTeam = form.Team
	}
	for _, rec := range records {
		if err := e.history.Record(sess.Guild, rec); err != nil {
			slog.Error("Failed to record transfer", slog.Any("error", err),
				slog.String("guild_id", sess.Guild.String()))
		}
	}
}

func (e *Engine) markTransferred(sess *Session) {
	if sess.Deal == DealRelease {
		return
	}
	moved := []snowflake.ID{sess.Target}
	if sess.Deal == DealTrade {
		moved = sess.Extra
	}
	for _, id := range moved {
		if err := e.tracker.MarkTransferred(sess.Guild, id, store.TransferType(sess.Deal)); err != nil {
			slog.Error("Failed to mark player transferred", slog.Any("error", err),
				slog.String("guild_id", sess.Guild.String()))
		}
	}
}

func (e *Engine) announce(sess *Session, form Form) {
	channelSlot, pingSlot := store.SlotTransferChannel, store.SlotTransferPing
	if sess.Deal == DealRelease {
		channelSlot, pingSlot = store.SlotFreeAgentChannel, store.SlotFreeAgentPing
	}

	channelID, ok := e.roles.Get(sess.Guild, channelSlot)
	if !ok {
		slog.Warn("No announcement channel configured",
			slog.String("guild_id", sess.Guild.String()),
			slog.String("slot", string(channelSlot)))
		return
	}

	var content string
	if pingID, ok := e.roles.Get(sess.Guild, pingSlot); ok {
		content = fmt.Sprintf("<@&%s>", pingID)
	}

	if _, err := e.client.Rest().CreateMessage(channelID, discord.MessageCreate{
		Content: content,
		Embeds:  []discord.Embed{announcementEmbed(sess, form)},
	}); err != nil {
		slog.Error("Failed to announce transfer", slog.Any("error", err),
			slog.String("guild_id", sess.Guild.String()))
	}
}

func (e *Engine) HandleEdit(event *handler.ComponentEvent) error {
	action, err := ParseCustomID(event.Data.CustomID())
	if err != nil {
		return ephemeral(event, "This button is no longer valid.")
	}

	// Editing stays with whoever drafted the proposal.
	if !action.mayEdit(event.User().ID) {
		return ephemeral(event, "Only the initiator may edit this proposal.")
	}

	sess, ok := e.sessions.Get(event.ChannelID())
	if !ok {
		return ephemeral(event, "This negotiation is no longer active.")
	}
	if sess.State().Terminal() {
		return ephemeral(event, "This negotiation has already concluded.")
	}

	formAction := action
	formAction.Kind = KindForm
	return event.Modal(editModal(formAction, sess.Deal, sess.Form()))
}

func (e *Engine) HandleForm(event *handler.ModalEvent) error {
	action, err := ParseCustomID(event.Data.CustomID)
	if err != nil {
		return ephemeralModal(event, "This form is no longer valid.")
	}
	if !action.mayEdit(event.User().ID) {
		return ephemeralModal(event, "Only the initiator may edit this proposal.")
	}

	sess, ok := e.sessions.Get(event.ChannelID())
	if !ok {
		return ephemeralModal(event, "This negotiation is no longer active.")
	}

	form := sess.Form()
	if team := strings.TrimSpace(event.Data.Text("team")); team != "" {
		form.Team = team
	}
	if raw, ok := event.Data.OptText("salary"); ok {
		if n, valid := economy.ParseAmount(raw); valid && n > 0 {
			form.Salary = n
		}
	}
	if raw, ok := event.Data.OptText("duration"); ok && strings.TrimSpace(raw) != "" {
		form.Duration = strings.TrimSpace(raw)
	}
	if raw, ok := event.Data.OptText("bonus"); ok {
		if n, valid := economy.ParseAmount(raw); valid && n >= 0 {
			form.Bonus = n
		}
	}
	if raw, ok := event.Data.OptText("fee"); ok {
		if n, valid := economy.ParseAmount(raw); valid && n >= 0 {
			form.Fee = n
		}
	}

	if err := sess.Transition(StateEdited); err != nil {
		if errors.Is(err, ErrSessionClosed) {
			return ephemeralModal(event, "This negotiation has already concluded.")
		}
		return err
	}
	sess.SetForm(form)

	// Same message, same three actions, new field values.
	components := draftComponents(action.withKind(""), false)
	return event.UpdateMessage(discord.MessageUpdate{
		Embeds:     &[]discord.Embed{draftEmbed(sess.Deal, form, sess.Initiator, sess.Target)},
		Components: &components,
	})
}

// Expire is the TTL timer's target: force the channel down whatever
// state the negotiation is in.
func (e *Engine) Expire(channel snowflake.ID) {
	if sess, ok := e.sessions.Get(channel); ok {
		if err := sess.Transition(StateTimedOut); err == nil {
			slog.Info("Negotiation timed out",
				slog.String("type", "sys"),
				slog.String("channel_id", channel.String()))
			e.audit(sess, StateTimedOut)
		}
	}
	e.deleteChannel(channel)
}

// teardown deletes the channel after the grace delay so the verdict
// can render first.
func (e *Engine) teardown(channel snowflake.ID) {
	time.AfterFunc(e.cfg.Grace, func() { e.deleteChannel(channel) })
}

// deleteChannel is idempotent: a channel that is already gone counts
// as deleted.
func (e *Engine) deleteChannel(channel snowflake.ID) {
	e.sessions.Remove(channel)
	if err := e.client.Rest().DeleteChannel(channel); err != nil && !isNotFound(err) {
		slog.Error("Failed to delete negotiation channel", slog.Any("error", err),
			slog.String("channel_id", channel.String()))
	}
}

// categoryID resolves the configured negotiation category by name,
// once per guild.
func (e *Engine) categoryID(guild snowflake.ID) (snowflake.ID, bool) {
	e.categoryMu.Lock()
	defer e.categoryMu.Unlock()

	if id, ok := e.categoryIDs[guild]; ok {
		return id, true
	}

	channels, err := e.client.Rest().GetGuildChannels(guild)
	if err != nil {
		return 0, false
	}
	for _, ch := range channels {
		if ch.Type() == discord.ChannelTypeGuildCategory && strings.EqualFold(ch.Name(), e.cfg.Category) {
			e.categoryIDs[guild] = ch.ID()
			return ch.ID(), true
		}
	}
	return 0, false
}

func (a Action) withKind(k Kind) Action {
	a.Kind = k
	return a
}

func (p Participant) mention() string {
	return fmt.Sprintf("<@%s>", p.ID)
}

func channelName(deal Deal, targetName string) string {
	name := strings.ToLower(strings.ReplaceAll(targetName, " ", "-"))
	return fmt.Sprintf("%s-%s", deal, name)
}

func isNotFound(err error) bool {
	var restErr rest.Error
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusNotFound
}

func ephemeral(event *handler.ComponentEvent, msg string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: msg,
		Flags:   discord.MessageFlagEphemeral,
	})
}

func ephemeralModal(event *handler.ModalEvent, msg string) error {
	return event.CreateMessage(discord.MessageCreate{
		Content: msg,
		Flags:   discord.MessageFlagEphemeral,
	})
}
