package negotiation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/futbolrp/transferbot/transferbot/config"
)

// Sweeper reclaims negotiation channels whose timers were lost to a
// restart. Live sessions are swept from the index; orphans are found
// by scanning the negotiation category for channels older than the
// TTL (the creation instant is embedded in the channel snowflake).
type Sweeper struct {
	client bot.Client
	engine *Engine
	ttl    time.Duration
}

func NewSweeper(client bot.Client, engine *Engine, ttl time.Duration) *Sweeper {
	return &Sweeper{client: client, engine: engine, ttl: ttl}
}

// Run executes one sweep pass. Deletions are bounded so a backlog of
// orphans cannot hammer the REST API.
func (s *Sweeper) Run(ctx context.Context) {
	var stale []snowflake.ID

	for _, sess := range s.engine.Sessions().Expired(s.ttl) {
		stale = append(stale, sess.Channel)
	}

	s.client.Caches().GuildsForEach(func(guild discord.Guild) {
		stale = append(stale, s.orphans(guild.ID)...)
	})

	if len(stale) == 0 {
		return
	}

	g, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(config.SweepConcurrency)
	for _, channelID := range stale {
		channelID := channelID
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			s.engine.Expire(channelID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("Sweep pass failed", slog.Any("error", err))
		return
	}

	slog.Info("Swept stale negotiation channels",
		slog.String("type", "sys"),
		slog.Int("count", len(stale)))
}

func (s *Sweeper) orphans(guild snowflake.ID) []snowflake.ID {
	channels, err := s.client.Rest().GetGuildChannels(guild)
	if err != nil {
		slog.Warn("Failed to list channels for sweep", slog.Any("error", err),
			slog.String("guild_id", guild.String()))
		return nil
	}

	var categoryID snowflake.ID
	for _, ch := range channels {
		if ch.Type() == discord.ChannelTypeGuildCategory && strings.EqualFold(ch.Name(), s.engine.cfg.Category) {
			categoryID = ch.ID()
			break
		}
	}
	if categoryID == 0 {
		return nil
	}

	var stale []snowflake.ID
	for _, ch := range channels {
		if ch.Type() != discord.ChannelTypeGuildText {
			continue
		}
		parent := ch.ParentID()
		if parent == nil || *parent != categoryID {
			continue
		}
		if time.Since(ch.ID().Time()) > s.ttl {
			stale = append(stale, ch.ID())
		}
	}
	return stale
}
