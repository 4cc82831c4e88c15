package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"assistbot/bot/apperr"
	"assistbot/core/logger"
)

// ErrUserNotFound is returned when a Telegram ID has no user row yet.
var ErrUserNotFound = errors.New("user not found")

// Users is the repository for the users table.
type Users struct {
	db *sqlx.DB
}

// NewUsers constructs the users repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Profile carries the mutable part of a Telegram account.
type Profile struct {
	FirstName string
	LastName  *string
	Username  *string
}

// GetOrCreate upserts the user row for a Telegram account and bumps
// last_activity. Profile fields are refreshed on every call since
// Telegram users rename themselves.
func (r *Users) GetOrCreate(ctx context.Context, telegramID int64, p Profile) (User, error) {
	const query = `
		INSERT INTO users (telegram_id, first_name, last_name, username)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    username = EXCLUDED.username,
		    last_activity = now()
		RETURNING id, telegram_id, first_name, last_name, username, created_at, last_activity`

	var u User
	if err := r.db.GetContext(ctx, &u, query, telegramID, p.FirstName, p.LastName, p.Username); err != nil {
		return User{}, apperr.Store("users.get_or_create", err)
	}

	logger.SVCUsers.Debug("user upserted",
		slog.String("event", "users.upsert"),
		slog.Int64("user_id", u.ID),
		slog.Int64("tg_user_id", telegramID),
	)
	return u, nil
}

// GetUserByTelegramID returns the user row for a Telegram account.
func (r *Users) GetUserByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	const query = `
		SELECT id, telegram_id, first_name, last_name, username, created_at, last_activity
		FROM users WHERE telegram_id = $1`

	var u User
	err := r.db.GetContext(ctx, &u, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, apperr.Store("users.by_telegram_id", err)
	}
	return u, nil
}

// Touch bumps last_activity for a known user. Missing rows are fine,
// the next GetOrCreate will recreate them.
func (r *Users) Touch(ctx context.Context, telegramID int64) error {
	const query = `UPDATE users SET last_activity = now() WHERE telegram_id = $1`
	if _, err := r.db.ExecContext(ctx, query, telegramID); err != nil {
		return apperr.Store("users.touch", err)
	}
	return nil
}

// Count returns the number of known users.
func (r *Users) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM users`); err != nil {
		return 0, apperr.Store("users.count", err)
	}
	return n, nil
}
