package store

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type cooldownDoc map[string]time.Time

func newCooldownDoc() cooldownDoc { return make(cooldownDoc) }

// CooldownStore gates commands to one use per window per user per
// guild, persisted in cooldowns.json so restarts do not reset timers.
type CooldownStore struct {
	file   *jsonFile
	window time.Duration
}

func NewCooldownStore(dir string, window time.Duration) *CooldownStore {
	return &CooldownStore{
		file:   newJSONFile(dir, "cooldowns.json"),
		window: window,
	}
}

func cooldownKey(guild, user snowflake.ID, command string) string {
	return fmt.Sprintf("%s:%s:%s", guild, user, command)
}

// Check reports whether the command may run, and the remaining wait if
// not.
func (s *CooldownStore) Check(guild, user snowflake.ID, command string) (bool, time.Duration, error) {
	var last time.Time
	err := view(s.file, newCooldownDoc, func(doc cooldownDoc) error {
		last = doc[cooldownKey(guild, user, command)]
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	if remaining := s.window - time.Since(last); remaining > 0 {
		return false, remaining, nil
	}
	return true, 0, nil
}

// Stamp records now as the command's last use.
func (s *CooldownStore) Stamp(guild, user snowflake.ID, command string) error {
	return update(s.file, newCooldownDoc, func(doc cooldownDoc) (bool, error) {
		doc[cooldownKey(guild, user, command)] = time.Now()
		return true, nil
	})
}

// Compact drops entries whose window has long expired. Run daily from
// the cron scheduler to keep the file from growing forever.
func (s *CooldownStore) Compact() error {
	return update(s.file, newCooldownDoc, func(doc cooldownDoc) (bool, error) {
		changed := false
		for key, last := range doc {
			if time.Since(last) > 2*s.window {
				delete(doc, key)
				changed = true
			}
		}
		return changed, nil
	})
}
