package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravel57/grosze-bot/internal/domain"
)

type Contacts struct{ pool *pgxpool.Pool }

func NewContacts(p *pgxpool.Pool) *Contacts { return &Contacts{pool: p} }

// FindOrCreate returns the (owner, contact) row, creating it on first use.
// The unique pair constraint makes concurrent callers converge on one row;
// a soft-deleted pair comes back to life here.
func (r *Contacts) FindOrCreate(ctx context.Context, ownerID, contactUserID int64) (domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contacts(owner_user_id, contact_user_id)
		VALUES($1,$2)
		ON CONFLICT (owner_user_id, contact_user_id) DO UPDATE SET active=TRUE
		RETURNING id, owner_user_id, contact_user_id, name, active
	`, ownerID, contactUserID)
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.OwnerID, &c.ContactUserID, &c.Name, &c.Active); err != nil {
		return domain.Contact{}, err
	}
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(username,'') FROM users WHERE id=$1`, contactUserID,
	).Scan(&c.ContactUsername); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.Contact{}, err
	}
	return c, nil
}

func (r *Contacts) Rename(ctx context.Context, ownerID, contactUserID int64, name string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contacts SET name=$3
		WHERE owner_user_id=$1 AND contact_user_id=$2
	`, ownerID, contactUserID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact (%d,%d): %w", ownerID, contactUserID, domain.ErrNotFound)
	}
	return nil
}

func (r *Contacts) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.owner_user_id, c.contact_user_id, c.name, c.active,
		       COALESCE(u.username,'') AS username
		FROM contacts c
		JOIN users u ON u.id = c.contact_user_id
		WHERE c.owner_user_id=$1 AND c.active
		ORDER BY c.id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.ContactUserID, &c.Name, &c.Active, &c.ContactUsername); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ResolveDisplayName is the exact-match inverse of the display-name fallback:
// the set name wins, an unnamed contact matches by the target's handle.
func (r *Contacts) ResolveDisplayName(ctx context.Context, ownerID int64, name string) (int64, error) {
	var contactUserID int64
	err := r.pool.QueryRow(ctx, `
		SELECT c.contact_user_id
		FROM contacts c
		JOIN users u ON u.id = c.contact_user_id
		WHERE c.owner_user_id=$1 AND c.active
		  AND COALESCE(NULLIF(c.name,''), u.username) = $2
		LIMIT 1
	`, ownerID, name).Scan(&contactUserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("contact %q: %w", name, domain.ErrNotFound)
	}
	return contactUserID, err
}

// DisplayNames resolves names for every counterparty the owner ever added,
// soft-deleted pairs included, so summaries over old ledger rows keep their
// labels.
func (r *Contacts) DisplayNames(ctx context.Context, ownerID int64) (map[int64]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.contact_user_id,
		       COALESCE(NULLIF(c.name,''), u.username, '') AS name
		FROM contacts c
		JOIN users u ON u.id = c.contact_user_id
		WHERE c.owner_user_id=$1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[int64]string)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

func (r *Contacts) Deactivate(ctx context.Context, ownerID, contactUserID int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE contacts SET active=FALSE
		WHERE owner_user_id=$1 AND contact_user_id=$2
	`, ownerID, contactUserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact (%d,%d): %w", ownerID, contactUserID, domain.ErrNotFound)
	}
	return nil
}
