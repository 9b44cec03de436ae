package domain

// Status is the per-user "inputting status": the single pending dialog step
// that decides how the next message or button press is interpreted. Stored
// as text on the users row, updated only by the dialog engine.
type Status string

const (
	StatusNone             Status = "none"
	StatusNewContactHandle Status = "new_contact_handle"
	StatusNewContactName   Status = "new_contact_name"
	StatusEditContactName  Status = "edit_contact_name"
	StatusDeleteContact    Status = "delete_contact"
	StatusSelectContact    Status = "select_contact_for_transfer"
	StatusSelectDirection  Status = "select_direction_for_transfer"
	StatusTransferAmount   Status = "transfer_amount"
)

// Direction of a pending transfer relative to the owner: "gave" means the
// owner is the sender, "took" means the contact is.
type Direction string

const (
	DirectionGave Direction = "gave"
	DirectionTook Direction = "took"
)
