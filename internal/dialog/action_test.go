package dialog

import "testing"

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		kind ActionKind
		name string
	}{
		{"add_new_contact", ActionAddContact, ""},
		{"edit_contact", ActionEditContact, ""},
		{"delete_contact", ActionDeleteContact, ""},
		{"select_contact", ActionNewTransfer, ""},
		{"debts", ActionBalances, ""},
		{"transaction_direction_gave", ActionDirectionGave, ""},
		{"transaction_direction_took", ActionDirectionTook, ""},
		{"delete_contact_yes", ActionDeleteYes, ""},
		{"delete_contact_no", ActionDeleteNo, ""},
		{"transaction_history", ActionHistory, ""},
		{"transaction_settled_accounts", ActionSettled, ""},
		{"selected_contact_Боря", ActionSelectContact, "Боря"},
		{"", ActionUnknown, ""},
		{"selected_contact", ActionUnknown, ""},
		{"something_else", ActionUnknown, ""},
	}
	for _, tc := range cases {
		a := ParseAction(tc.data)
		if a.Kind != tc.kind {
			t.Errorf("ParseAction(%q).Kind = %v, want %v", tc.data, a.Kind, tc.kind)
		}
		if a.ContactName != tc.name {
			t.Errorf("ParseAction(%q).ContactName = %q, want %q", tc.data, a.ContactName, tc.name)
		}
		if a.Raw != tc.data {
			t.Errorf("ParseAction(%q).Raw = %q", tc.data, a.Raw)
		}
	}
}

func TestSelectContactTokenRoundTrip(t *testing.T) {
	a := ParseAction(SelectContactToken("Вика"))
	if a.Kind != ActionSelectContact || a.ContactName != "Вика" {
		t.Fatalf("round trip lost the name: %+v", a)
	}
}
