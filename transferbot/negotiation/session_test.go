package negotiation

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

func TestSessionTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []State
		next    State
		wantErr error
	}{
		{
			name: "draft then accept",
			path: []State{StateDrafted},
			next: StateAccepted,
		},
		{
			name: "draft then edit then reject",
			path: []State{StateDrafted, StateEdited},
			next: StateRejected,
		},
		{
			name: "repeated edits stay legal",
			path: []State{StateDrafted, StateEdited, StateEdited},
			next: StateAccepted,
		},
		{
			name: "timeout from a fresh draft",
			path: []State{StateDrafted},
			next: StateTimedOut,
		},
		{
			name:    "skipping the draft",
			path:    nil,
			next:    StateAccepted,
			wantErr: ErrBadTransition,
		},
		{
			name:    "accept after accept",
			path:    []State{StateDrafted, StateAccepted},
			next:    StateAccepted,
			wantErr: ErrSessionClosed,
		},
		{
			name:    "reject after accept",
			path:    []State{StateDrafted, StateAccepted},
			next:    StateRejected,
			wantErr: ErrSessionClosed,
		},
		{
			name:    "edit after timeout",
			path:    []State{StateDrafted, StateTimedOut},
			next:    StateEdited,
			wantErr: ErrSessionClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &Session{}
			for _, s := range tt.path {
				if err := sess.Transition(s); err != nil {
					t.Fatalf("setup transition to %v failed: %v", s, err)
				}
			}
			err := sess.Transition(tt.next)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Transition(%v) error = %v, want %v", tt.next, err, tt.wantErr)
			}
		})
	}
}

// Two racing verdicts must resolve to exactly one winner.
func TestSessionFirstVerdictWins(t *testing.T) {
	sess := &Session{}
	if err := sess.Transition(StateDrafted); err != nil {
		t.Fatal(err)
	}

	if err := sess.Transition(StateAccepted); err != nil {
		t.Fatalf("first verdict rejected: %v", err)
	}
	if err := sess.Transition(StateRejected); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("second verdict error = %v, want ErrSessionClosed", err)
	}
	if got := sess.State(); got != StateAccepted {
		t.Errorf("state = %v, want %v", got, StateAccepted)
	}
}

func TestSessionFormCopy(t *testing.T) {
	sess := &Session{}
	sess.SetForm(Form{Team: "Rovers", Salary: 5000})

	got := sess.Form()
	got.Team = "mutated"

	if sess.Form().Team != "Rovers" {
		t.Error("Form() leaked a mutable reference")
	}
}

func TestSessionsExpired(t *testing.T) {
	index := NewSessions(16)

	old := &Session{Channel: snowflake.ID(1), CreatedAt: time.Now().Add(-2 * time.Hour)}
	fresh := &Session{Channel: snowflake.ID(2), CreatedAt: time.Now()}
	index.Put(old)
	index.Put(fresh)

	expired := index.Expired(time.Hour)
	if len(expired) != 1 || expired[0].Channel != old.Channel {
		t.Fatalf("Expired() = %v sessions, want only the stale one", len(expired))
	}

	index.Remove(old.Channel)
	if _, ok := index.Get(old.Channel); ok {
		t.Error("removed session still retrievable")
	}
	if _, ok := index.Get(fresh.Channel); !ok {
		t.Error("fresh session missing")
	}
}
