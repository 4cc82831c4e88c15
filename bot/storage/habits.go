package storage

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"assistbot/bot/apperr"
	"assistbot/core/logger"
)

// Habits is the repository for the habits table.
type Habits struct {
	db *sqlx.DB
}

// NewHabits constructs the habits repository.
func NewHabits(db *sqlx.DB) *Habits {
	return &Habits{db: db}
}

// Add inserts a new habit and returns it.
func (r *Habits) Add(ctx context.Context, userID int64, name, description string) (Habit, error) {
	const query = `
		INSERT INTO habits (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, description, completed, created_at`

	var h Habit
	if err := r.db.GetContext(ctx, &h, query, userID, name, description); err != nil {
		return Habit{}, apperr.Store("habits.add", err)
	}

	logger.SVCHabits.Debug("habit added",
		slog.String("event", "habits.add"),
		slog.Int64("user_id", userID),
		slog.Int64("habit_id", h.ID),
	)
	return h, nil
}

// List returns the user's habits, oldest first.
func (r *Habits) List(ctx context.Context, userID int64) ([]Habit, error) {
	const query = `
		SELECT id, user_id, name, description, completed, created_at
		FROM habits WHERE user_id = $1
		ORDER BY created_at, id`

	habits := []Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, apperr.Store("habits.list", err)
	}
	return habits, nil
}
