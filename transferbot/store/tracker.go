package store

import (
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// TransferStatus records that a player already moved inside the open
// transfer window.
type TransferStatus struct {
	Type TransferType `json:"type"`
	When time.Time    `json:"when"`
}

type trackerGuild struct {
	// PeriodOpen gates whether any non-loan transfer may run at all.
	PeriodOpen  bool                      `json:"period_open"`
	Transferred map[string]TransferStatus `json:"transferred,omitempty"`
}

type trackerDoc struct {
	Guilds map[string]*trackerGuild `json:"guilds,omitempty"`
	// Used holds one-shot global flags (one-time announcements and the
	// like) keyed by an arbitrary name.
	Used map[string]time.Time `json:"used,omitempty"`
}

func newTrackerDoc() *trackerDoc {
	return &trackerDoc{}
}

func (d *trackerDoc) guild(guild snowflake.ID) *trackerGuild {
	if d.Guilds == nil {
		d.Guilds = make(map[string]*trackerGuild)
	}
	g, ok := d.Guilds[guild.String()]
	if !ok {
		g = &trackerGuild{}
		d.Guilds[guild.String()] = g
	}
	return g
}

// TrackerStore keeps the transfer-period gate, per-player transferred
// flags and one-shot global flags in tracker.json.
type TrackerStore struct {
	file *jsonFile
}

func NewTrackerStore(dir string) *TrackerStore {
	return &TrackerStore{file: newJSONFile(dir, "tracker.json")}
}

// IsTransferred reports whether the player already transferred this
// period, and how. An unreadable tracker file reads as "not
// transferred" and is logged; the boolean predicates on this store
// fail closed rather than fail the caller.
func (s *TrackerStore) IsTransferred(guild, user snowflake.ID) (TransferStatus, bool) {
	var status TransferStatus
	var found bool
	if err := view(s.file, newTrackerDoc, func(doc *trackerDoc) error {
		if g, ok := doc.Guilds[guild.String()]; ok {
			status, found = g.Transferred[user.String()]
		}
		return nil
	}); err != nil {
		slog.Error("Failed to read tracker file", slog.Any("error", err))
	}
	return status, found
}

func (s *TrackerStore) MarkTransferred(guild, user snowflake.ID, typ TransferType) error {
	return update(s.file, newTrackerDoc, func(doc *trackerDoc) (bool, error) {
		g := doc.guild(guild)
		if g.Transferred == nil {
			g.Transferred = make(map[string]TransferStatus)
		}
		g.Transferred[user.String()] = TransferStatus{Type: typ, When: time.Now()}
		return true, nil
	})
}

// ResetPeriod clears every transferred flag in the guild.
func (s *TrackerStore) ResetPeriod(guild snowflake.ID) error {
	return update(s.file, newTrackerDoc, func(doc *trackerDoc) (bool, error) {
		g, ok := doc.Guilds[guild.String()]
		if !ok || len(g.Transferred) == 0 {
			return false, nil
		}
		g.Transferred = nil
		return true, nil
	})
}

// PeriodOpen reports the guild-wide transfer gate. An unreadable
// tracker file reads as closed, which blocks transfers instead of
// waving them through.
func (s *TrackerStore) PeriodOpen(guild snowflake.ID) bool {
	var open bool
	if err := view(s.file, newTrackerDoc, func(doc *trackerDoc) error {
		if g, ok := doc.Guilds[guild.String()]; ok {
			open = g.PeriodOpen
		}
		return nil
	}); err != nil {
		slog.Error("Failed to read tracker file", slog.Any("error", err))
	}
	return open
}

func (s *TrackerStore) SetPeriod(guild snowflake.ID, open bool) error {
	return update(s.file, newTrackerDoc, func(doc *trackerDoc) (bool, error) {
		doc.guild(guild).PeriodOpen = open
		return true, nil
	})
}

// Used reports a one-shot flag.
func (s *TrackerStore) Used(key string) bool {
	var used bool
	if err := view(s.file, newTrackerDoc, func(doc *trackerDoc) error {
		_, used = doc.Used[key]
		return nil
	}); err != nil {
		slog.Error("Failed to read tracker file", slog.Any("error", err))
	}
	return used
}

func (s *TrackerStore) MarkUsed(key string) error {
	return update(s.file, newTrackerDoc, func(doc *trackerDoc) (bool, error) {
		if doc.Used == nil {
			doc.Used = make(map[string]time.Time)
		}
		if _, ok := doc.Used[key]; ok {
			return false, nil
		}
		doc.Used[key] = time.Now()
		return true, nil
	})
}
