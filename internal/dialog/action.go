package dialog

import "strings"

// Action is a decoded callback token. The raw string from the transport is
// parsed exactly once, here; everything past this point switches on a closed
// set of kinds, with ActionUnknown instead of a silent fall-through.
type Action struct {
	Kind ActionKind

	// ContactName carries the display name for ActionSelectContact.
	ContactName string

	// Raw is kept for reporting unrecognized tokens back to the user.
	Raw string
}

type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAddContact
	ActionEditContact
	ActionDeleteContact
	ActionNewTransfer
	ActionBalances
	ActionSelectContact
	ActionDirectionGave
	ActionDirectionTook
	ActionDeleteYes
	ActionDeleteNo
	ActionHistory
	ActionSettled
)

// Wire tokens. The select-contact button embeds the display name after a
// fixed prefix; everything else is a bare token.
const (
	tokenAddContact    = "add_new_contact"
	tokenEditContact   = "edit_contact"
	tokenDeleteContact = "delete_contact"
	tokenNewTransfer   = "select_contact"
	tokenBalances      = "debts"
	tokenGave          = "transaction_direction_gave"
	tokenTook          = "transaction_direction_took"
	tokenDeleteYes     = "delete_contact_yes"
	tokenDeleteNo      = "delete_contact_no"
	tokenHistory       = "transaction_history"
	tokenSettled       = "transaction_settled_accounts"

	selectContactPrefix = "selected_contact_"
)

func ParseAction(data string) Action {
	if name, ok := strings.CutPrefix(data, selectContactPrefix); ok {
		return Action{Kind: ActionSelectContact, ContactName: name, Raw: data}
	}
	kinds := map[string]ActionKind{
		tokenAddContact:    ActionAddContact,
		tokenEditContact:   ActionEditContact,
		tokenDeleteContact: ActionDeleteContact,
		tokenNewTransfer:   ActionNewTransfer,
		tokenBalances:      ActionBalances,
		tokenGave:          ActionDirectionGave,
		tokenTook:          ActionDirectionTook,
		tokenDeleteYes:     ActionDeleteYes,
		tokenDeleteNo:      ActionDeleteNo,
		tokenHistory:       ActionHistory,
		tokenSettled:       ActionSettled,
	}
	if k, ok := kinds[data]; ok {
		return Action{Kind: k, Raw: data}
	}
	return Action{Kind: ActionUnknown, Raw: data}
}

// SelectContactToken builds the callback data for a contact button.
func SelectContactToken(name string) string {
	return selectContactPrefix + name
}
