package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ravel57/grosze-bot/internal/domain"
)

type Users struct{ pool *pgxpool.Pool }

func NewUsers(p *pgxpool.Pool) *Users { return &Users{pool: p} }

const userColumns = `id, telegram_id, username, status, selected_contact_id, selected_direction`

func (r *Users) Upsert(ctx context.Context, telegramID int64, username string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users(telegram_id, username)
		VALUES($1,$2)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username=EXCLUDED.username
		RETURNING `+userColumns, telegramID, username)
	return scanUser(row)
}

func (r *Users) ByTelegramID(ctx context.Context, telegramID int64) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id=$1`, telegramID)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("telegram id %d: %w", telegramID, domain.ErrNotFound)
	}
	return u, err
}

func (r *Users) ByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(username) = lower($1)
	`, username)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return u, err
}

func (r *Users) ByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, err
}

func (r *Users) SetStatus(ctx context.Context, userID int64, status domain.Status) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET status=$2 WHERE id=$1`, userID, string(status))
	return err
}

func (r *Users) SetSelectedContact(ctx context.Context, userID, contactUserID int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET selected_contact_id=$2 WHERE id=$1`, userID, contactUserID)
	return err
}

func (r *Users) SetDirection(ctx context.Context, userID int64, d domain.Direction) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET selected_direction=$2 WHERE id=$1`, userID, string(d))
	return err
}

func (r *Users) ClearSelections(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET selected_contact_id=NULL, selected_direction=NULL WHERE id=$1
	`, userID)
	return err
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	var status string
	var direction *string
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &status, &u.SelectedContactID, &direction); err != nil {
		return domain.User{}, err
	}
	u.Status = domain.Status(status)
	if direction != nil {
		d := domain.Direction(*direction)
		u.SelectedDirection = &d
	}
	return u, nil
}
