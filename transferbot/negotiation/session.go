package negotiation

import (
	"errors"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
)

// State is a negotiation lifecycle state.
type State int

const (
	StateInitiated State = iota
	StateDrafted
	StateEdited
	StateAccepted
	StateRejected
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateInitiated:
		return "initiated"
	case StateDrafted:
		return "drafted"
	case StateEdited:
		return "edited"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	case StateTimedOut:
		return "timed-out"
	}
	return "unknown"
}

// Terminal reports whether no further transition may leave s.
func (s State) Terminal() bool {
	return s == StateAccepted || s == StateRejected || s == StateTimedOut
}

// transitions is the single authority on which state changes are
// legal. Accept, reject and timeout race each other; the first one to
// commit wins and the rest see ErrSessionClosed.
var transitions = map[State][]State{
	StateInitiated: {StateDrafted, StateTimedOut},
	StateDrafted:   {StateEdited, StateAccepted, StateRejected, StateTimedOut},
	StateEdited:    {StateEdited, StateAccepted, StateRejected, StateTimedOut},
}

var (
	ErrSessionClosed = errors.New("negotiation already concluded")
	ErrBadTransition = errors.New("illegal negotiation transition")
)

// Form holds the editable fields of a proposal. Which fields render
// depends on the deal subtype.
type Form struct {
	Team     string
	Salary   int64
	Duration string
	Bonus    int64
	Fee      int64
}

// Session is one live negotiation: a private channel plus the latest
// edit of its proposal message. It lives only in memory; a process
// restart drops it and leaves the channel to the sweep.
type Session struct {
	Deal      Deal
	Guild     snowflake.ID
	Channel   snowflake.ID
	Message   snowflake.ID
	Initiator snowflake.ID
	Target    snowflake.ID
	Extra     []snowflake.ID
	CreatedAt time.Time

	mu    sync.Mutex
	state State
	form  Form
}

// Transition moves the session to next if the table allows it. On a
// terminal current state it reports ErrSessionClosed so a lost race is
// distinguishable from a plain bug.
func (s *Session) Transition(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return ErrSessionClosed
	}
	for _, allowed := range transitions[s.state] {
		if allowed == next {
			s.state = next
			return nil
		}
	}
	return ErrBadTransition
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns a copy of the current proposal fields.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetForm replaces the proposal fields after a modal submission.
func (s *Session) SetForm(f Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

// Sessions indexes live sessions by channel ID. The LRU bound is a
// safety valve: evicting an absurdly old live session just means its
// channel is reclaimed by the sweep instead of its buttons.
type Sessions struct {
	cache *lru.Cache
}

func NewSessions(size int) *Sessions {
	cache, _ := lru.New(size)
	return &Sessions{cache: cache}
}

func (s *Sessions) Put(sess *Session) {
	s.cache.Add(sess.Channel, sess)
}

func (s *Sessions) Get(channel snowflake.ID) (*Session, bool) {
	v, ok := s.cache.Get(channel)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (s *Sessions) Remove(channel snowflake.ID) {
	s.cache.Remove(channel)
}

// Expired reports every session older than ttl.
func (s *Sessions) Expired(ttl time.Duration) []*Session {
	var out []*Session
	for _, key := range s.cache.Keys() {
		if v, ok := s.cache.Peek(key); ok {
			sess := v.(*Session)
			if time.Since(sess.CreatedAt) > ttl {
				out = append(out, sess)
			}
		}
	}
	return out
}
