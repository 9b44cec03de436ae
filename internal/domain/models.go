package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                int64
	TelegramID        int64
	Username          string
	Status            Status
	SelectedContactID *int64 // user id of the counterparty being acted on
	SelectedDirection *Direction
}

type Contact struct {
	ID            int64
	OwnerID       int64
	ContactUserID int64
	Name          *string
	Active        bool

	// ContactUsername is the target user's current handle, carried along by
	// list queries so DisplayName can fall back without a second lookup.
	ContactUsername string
}

// DisplayName is the owner-chosen name when set, otherwise the target's
// handle. The handle is never copied into the contact row: it can change
// independently on the target user.
func (c Contact) DisplayName() string {
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	return c.ContactUsername
}

type Transfer struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
