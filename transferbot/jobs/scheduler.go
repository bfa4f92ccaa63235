// Package jobs runs the bot's background maintenance on a cron
// schedule: the orphaned-channel sweep and cooldown compaction.
package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/futbolrp/transferbot/transferbot/negotiation"
	"github.com/futbolrp/transferbot/transferbot/store"
)

type Scheduler struct {
	cron      *cron.Cron
	sweeper   *negotiation.Sweeper
	cooldowns *store.CooldownStore
}

func NewScheduler(sweeper *negotiation.Sweeper, cooldowns *store.CooldownStore) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		sweeper:   sweeper,
		cooldowns: cooldowns,
	}
}

// Start arms the schedule. Jobs run in cron's own goroutines.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.AddFunc("*/10 * * * *", func() {
		slog.Debug("Running negotiation sweep", slog.String("type", "sys"))
		s.sweeper.Run(ctx)
	})

	s.cron.AddFunc("0 4 * * *", func() {
		if err := s.cooldowns.Compact(); err != nil {
			slog.Error("Cooldown compaction failed",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	})

	s.cron.Start()
	slog.Info("Scheduler started", slog.String("type", "sys"))
}

// Stop halts the schedule and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("Scheduler stopped", slog.String("type", "sys"))
}
