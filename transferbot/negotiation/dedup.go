package negotiation

import (
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
)

// Deduper suppresses rapid repeated clicks: each (message, action,
// user) triple is remembered for a fixed window and re-runs inside it
// are rejected with an "already clicked" response instead of side
// effects.
type Deduper struct {
	cache  *lru.Cache
	window time.Duration
	now    func() time.Time
}

func NewDeduper(size int, window time.Duration) *Deduper {
	cache, _ := lru.New(size)
	return &Deduper{cache: cache, window: window, now: time.Now}
}

// FirstClick records the click and reports whether it is the first one
// inside the window.
func (d *Deduper) FirstClick(message snowflake.ID, kind Kind, user snowflake.ID) bool {
	key := fmt.Sprintf("%s:%s:%s", message, kind, user)
	if v, ok := d.cache.Get(key); ok {
		if d.now().Sub(v.(time.Time)) < d.window {
			return false
		}
	}
	d.cache.Add(key, d.now())
	return true
}
