package negotiation

import (
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// Kind is a negotiation interaction.
type Kind string

const (
	KindAccept Kind = "accept"
	KindReject Kind = "reject"
	KindEdit   Kind = "edit"
	KindForm   Kind = "form"
)

// Deal is a transfer subtype.
type Deal string

const (
	DealOffer    Deal = "offer"
	DealContract Deal = "contract"
	DealLoan     Deal = "loan"
	DealTrade    Deal = "trade"
	DealRelease  Deal = "release"
)

// Action is the decoded form of a negotiation custom ID. Routing
// switches on the decoded variant; the wire string exists only at the
// interaction boundary.
type Action struct {
	Kind      Kind
	Deal      Deal
	Initiator snowflake.ID
	// Target is the designated counter-party: the only participant who
	// may accept or reject.
	Target snowflake.ID
	// Extra holds additional participants (the two swapped players of
	// a trade).
	Extra []snowflake.ID
}

// mayConclude reports whether user is the designated counter-party,
// the only participant who may accept or reject.
func (a Action) mayConclude(user snowflake.ID) bool {
	return user == a.Target
}

// mayEdit reports whether user is the initiator, the only participant
// who may reopen the proposal form.
func (a Action) mayEdit(user snowflake.ID) bool {
	return user == a.Initiator
}

// CustomID encodes the action as "/negotiation/<kind>/<payload>" where
// the payload packs deal and participants colon-separated into a
// single path segment, which keeps the router's prefix matching happy.
func (a Action) CustomID() string {
	parts := []string{string(a.Deal), a.Initiator.String(), a.Target.String()}
	for _, id := range a.Extra {
		parts = append(parts, id.String())
	}
	return fmt.Sprintf("/negotiation/%s/%s", a.Kind, strings.Join(parts, ":"))
}

// ParseCustomID decodes a wire custom ID back into an Action. Any
// malformed input is rejected here, before it can reach a handler.
func ParseCustomID(customID string) (Action, error) {
	segments := strings.Split(customID, "/")
	// "", "negotiation", kind, payload
	if len(segments) != 4 || segments[1] != "negotiation" {
		return Action{}, fmt.Errorf("not a negotiation custom id: %q", customID)
	}

	var action Action
	switch Kind(segments[2]) {
	case KindAccept, KindReject, KindEdit, KindForm:
		action.Kind = Kind(segments[2])
	default:
		return Action{}, fmt.Errorf("unknown negotiation action %q", segments[2])
	}

	parts := strings.Split(segments[3], ":")
	if len(parts) < 3 {
		return Action{}, fmt.Errorf("short negotiation payload %q", segments[3])
	}

	switch Deal(parts[0]) {
	case DealOffer, DealContract, DealLoan, DealTrade, DealRelease:
		action.Deal = Deal(parts[0])
	default:
		return Action{}, fmt.Errorf("unknown deal type %q", parts[0])
	}

	var err error
	if action.Initiator, err = snowflake.Parse(parts[1]); err != nil {
		return Action{}, fmt.Errorf("bad initiator id %q: %w", parts[1], err)
	}
	if action.Target, err = snowflake.Parse(parts[2]); err != nil {
		return Action{}, fmt.Errorf("bad target id %q: %w", parts[2], err)
	}
	for _, raw := range parts[3:] {
		id, err := snowflake.Parse(raw)
		if err != nil {
			return Action{}, fmt.Errorf("bad participant id %q: %w", raw, err)
		}
		action.Extra = append(action.Extra, id)
	}
	return action, nil
}
