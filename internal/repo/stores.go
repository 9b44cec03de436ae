// Package repo implements the dialog engine's store interfaces on Postgres
// through pgx.
package repo

import "github.com/ravel57/grosze-bot/internal/dialog"

var (
	_ dialog.UserStore     = (*Users)(nil)
	_ dialog.ContactStore  = (*Contacts)(nil)
	_ dialog.TransferStore = (*Transfers)(nil)
)
