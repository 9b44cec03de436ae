package dialog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ravel57/grosze-bot/internal/domain"
)

// Store interfaces the engine needs from persistence. The pgx
// implementations live in internal/repo; tests use in-memory fakes.

type UserStore interface {
	// Upsert registers the user on first contact and refreshes the handle
	// afterwards. One row per telegram id, always.
	Upsert(ctx context.Context, telegramID int64, username string) (domain.User, error)
	ByTelegramID(ctx context.Context, telegramID int64) (domain.User, error)
	ByUsername(ctx context.Context, username string) (domain.User, error)
	ByID(ctx context.Context, id int64) (domain.User, error)

	SetStatus(ctx context.Context, userID int64, status domain.Status) error
	SetSelectedContact(ctx context.Context, userID int64, contactUserID int64) error
	SetDirection(ctx context.Context, userID int64, d domain.Direction) error
	// ClearSelections drops both the selected contact and the direction so a
	// later, unrelated dialog can never consume them stale.
	ClearSelections(ctx context.Context, userID int64) error
}

type ContactStore interface {
	FindOrCreate(ctx context.Context, ownerID, contactUserID int64) (domain.Contact, error)
	Rename(ctx context.Context, ownerID, contactUserID int64, name string) error
	ListForOwner(ctx context.Context, ownerID int64) ([]domain.Contact, error)
	// ResolveDisplayName is the exact-match inverse of DisplayName, used when
	// a button press carries a name instead of an id.
	ResolveDisplayName(ctx context.Context, ownerID int64, name string) (int64, error)
	// DisplayNames maps counterparty user ids to display names across ALL
	// contact rows, soft-deleted ones included: their ledger entries still
	// need a name in summaries.
	DisplayNames(ctx context.Context, ownerID int64) (map[int64]string, error)
	Deactivate(ctx context.Context, ownerID, contactUserID int64) error
}

type TransferStore interface {
	Create(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (domain.Transfer, error)
	ListInvolving(ctx context.Context, userID int64) ([]domain.Transfer, error)
}
