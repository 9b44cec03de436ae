package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ravel57/grosze-bot/internal/domain"
)

// Transfers is the append-only ledger. No update or delete exists here on
// purpose: corrections are new offsetting rows.
type Transfers struct{ pool *pgxpool.Pool }

func NewTransfers(p *pgxpool.Pool) *Transfers { return &Transfers{pool: p} }

// Amounts cross the wire as NUMERIC text so no binary float ever touches
// them on either side.
func (r *Transfers) Create(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (domain.Transfer, error) {
	t := domain.Transfer{FromUserID: fromUserID, ToUserID: toUserID, Amount: amount}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO transfers(from_user_id, to_user_id, amount)
		VALUES($1,$2,$3::numeric)
		RETURNING id, created_at
	`, fromUserID, toUserID, amount.String()).Scan(&t.ID, &t.CreatedAt)
	return t, err
}

func (r *Transfers) ListInvolving(ctx context.Context, userID int64) ([]domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, from_user_id, to_user_id, amount::text, created_at
		FROM transfers
		WHERE from_user_id=$1 OR to_user_id=$1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transfer
	for rows.Next() {
		var t domain.Transfer
		var amount string
		if err := rows.Scan(&t.ID, &t.FromUserID, &t.ToUserID, &amount, &t.CreatedAt); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
