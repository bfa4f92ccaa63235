package negotiation

import (
	"reflect"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestCustomIDRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{
			name: "accept offer",
			action: Action{
				Kind:      KindAccept,
				Deal:      DealOffer,
				Initiator: snowflake.ID(111),
				Target:    snowflake.ID(222),
			},
		},
		{
			name: "edit release",
			action: Action{
				Kind:      KindEdit,
				Deal:      DealRelease,
				Initiator: snowflake.ID(111),
				Target:    snowflake.ID(222),
			},
		},
		{
			name: "trade with swapped players",
			action: Action{
				Kind:      KindReject,
				Deal:      DealTrade,
				Initiator: snowflake.ID(111),
				Target:    snowflake.ID(222),
				Extra:     []snowflake.ID{333, 444},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := tt.action.CustomID()
			got, err := ParseCustomID(wire)
			if err != nil {
				t.Fatalf("ParseCustomID(%q) error = %v", wire, err)
			}
			if !reflect.DeepEqual(got, tt.action) {
				t.Errorf("ParseCustomID(%q) = %+v, want %+v", wire, got, tt.action)
			}
		})
	}
}

func TestParseCustomIDRejectsMalformedInput(t *testing.T) {
	tests := []string{
		"",
		"/other/accept/offer:1:2",
		"/negotiation/accept",
		"/negotiation/explode/offer:1:2",
		"/negotiation/accept/mystery:1:2",
		"/negotiation/accept/offer:1",
		"/negotiation/accept/offer:abc:2",
		"/negotiation/accept/offer:1:xyz",
		"/negotiation/accept/trade:1:2:bad",
	}
	for _, wire := range tests {
		t.Run(wire, func(t *testing.T) {
			if _, err := ParseCustomID(wire); err == nil {
				t.Errorf("ParseCustomID(%q) accepted malformed input", wire)
			}
		})
	}
}
