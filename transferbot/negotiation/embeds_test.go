package negotiation

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

func TestDraftComponentsCarryTheirOwnKinds(t *testing.T) {
	base := Action{
		Deal:      DealOffer,
		Initiator: snowflake.ID(1),
		Target:    snowflake.ID(2),
	}

	rows := draftComponents(base, false)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row, ok := rows[0].(discord.ActionRowComponent)
	if !ok {
		t.Fatalf("component is %T, want ActionRowComponent", rows[0])
	}

	wantKinds := []Kind{KindAccept, KindReject, KindEdit}
	buttons := row.Buttons()
	if len(buttons) != len(wantKinds) {
		t.Fatalf("buttons = %d, want %d", len(buttons), len(wantKinds))
	}
	for i, btn := range buttons {
		action, err := ParseCustomID(btn.CustomID)
		if err != nil {
			t.Fatalf("button %d custom id %q: %v", i, btn.CustomID, err)
		}
		if action.Kind != wantKinds[i] {
			t.Errorf("button %d kind = %v, want %v", i, action.Kind, wantKinds[i])
		}
		if action.Deal != base.Deal || action.Initiator != base.Initiator || action.Target != base.Target {
			t.Errorf("button %d lost the payload: %+v", i, action)
		}
		if btn.Disabled {
			t.Errorf("button %d disabled on a live draft", i)
		}
	}

	for _, btn := range mustRow(t, draftComponents(base, true)).Buttons() {
		if !btn.Disabled {
			t.Errorf("button %q still enabled after conclusion", btn.CustomID)
		}
	}
}

func mustRow(t *testing.T, rows []discord.ContainerComponent) discord.ActionRowComponent {
	t.Helper()
	row, ok := rows[0].(discord.ActionRowComponent)
	if !ok {
		t.Fatalf("component is %T, want ActionRowComponent", rows[0])
	}
	return row
}

func TestEditModalRowsVaryBySubtype(t *testing.T) {
	action := Action{
		Kind:      KindForm,
		Initiator: snowflake.ID(1),
		Target:    snowflake.ID(2),
	}

	tests := []struct {
		deal Deal
		want []string
	}{
		{DealOffer, []string{"team", "salary", "duration"}},
		{DealContract, []string{"team", "salary", "duration", "bonus"}},
		{DealLoan, []string{"team", "salary", "duration", "fee"}},
		{DealTrade, []string{"team"}},
		{DealRelease, []string{"team", "fee"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.deal), func(t *testing.T) {
			action.Deal = tt.deal
			modal := editModal(action, tt.deal, Form{})

			var got []string
			for _, row := range modal.Components {
				actionRow, ok := row.(discord.ActionRowComponent)
				if !ok {
					t.Fatalf("modal row is %T", row)
				}
				for _, comp := range actionRow {
					input, ok := comp.(discord.TextInputComponent)
					if !ok {
						t.Fatalf("modal component is %T", comp)
					}
					got = append(got, input.CustomID)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
