package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"assistbot/bot/apperr"
	"assistbot/core/logger"
)

// ErrTaskNotFound is returned when a completion targets a task that
// does not exist or is already done.
var ErrTaskNotFound = errors.New("task not found")

// Tasks is the repository for the tasks table.
type Tasks struct {
	db *sqlx.DB
}

// NewTasks constructs the tasks repository.
func NewTasks(db *sqlx.DB) *Tasks {
	return &Tasks{db: db}
}

// Create inserts a new active task and returns it.
func (r *Tasks) Create(ctx context.Context, userID int64, text, category string) (Task, error) {
	const query = `
		INSERT INTO tasks (user_id, text, category)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, text, category, is_done, created_at, done_at`

	var t Task
	if err := r.db.GetContext(ctx, &t, query, userID, text, category); err != nil {
		return Task{}, apperr.Store("tasks.create", err)
	}

	logger.SVCTasks.Debug("task created",
		slog.String("event", "tasks.create"),
		slog.Int64("user_id", userID),
		slog.Int64("task_id", t.ID),
	)
	return t, nil
}

// Active returns the user's open tasks, oldest first.
func (r *Tasks) Active(ctx context.Context, userID int64) ([]Task, error) {
	const query = `
		SELECT id, user_id, text, category, is_done, created_at, done_at
		FROM tasks WHERE user_id = $1 AND is_done = false
		ORDER BY created_at, id`

	tasks := []Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, apperr.Store("tasks.active", err)
	}
	return tasks, nil
}

// Completed returns the user's finished tasks, most recently done first.
func (r *Tasks) Completed(ctx context.Context, userID int64) ([]Task, error) {
	const query = `
		SELECT id, user_id, text, category, is_done, created_at, done_at
		FROM tasks WHERE user_id = $1 AND is_done = true
		ORDER BY done_at DESC, id DESC`

	tasks := []Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, apperr.Store("tasks.completed", err)
	}
	return tasks, nil
}

// Complete marks one task done. The is_done guard makes the operation
// idempotent: a second tap on the same button reports ErrTaskNotFound
// instead of rewriting done_at.
func (r *Tasks) Complete(ctx context.Context, userID, taskID int64) error {
	const query = `
		UPDATE tasks SET is_done = true, done_at = now()
		WHERE id = $1 AND user_id = $2 AND is_done = false`

	res, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return apperr.Store("tasks.complete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Store("tasks.complete", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	logger.SVCTasks.Debug("task completed",
		slog.String("event", "tasks.complete"),
		slog.Int64("user_id", userID),
		slog.Int64("task_id", taskID),
	)
	return nil
}

// GlobalStats aggregates counters across all users.
func (r *Tasks) GlobalStats(ctx context.Context) (TaskStats, error) {
	const query = `
		SELECT count(*) AS total,
		       count(*) FILTER (WHERE is_done) AS done,
		       count(*) FILTER (WHERE NOT is_done) AS active
		FROM tasks`

	var s TaskStats
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return TaskStats{}, apperr.Store("tasks.global_stats", err)
	}
	return s, nil
}

// Stats aggregates the user's to-do counters.
func (r *Tasks) Stats(ctx context.Context, userID int64) (TaskStats, error) {
	const query = `
		SELECT count(*) AS total,
		       count(*) FILTER (WHERE is_done) AS done,
		       count(*) FILTER (WHERE NOT is_done) AS active
		FROM tasks WHERE user_id = $1`

	var s TaskStats
	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		return TaskStats{}, apperr.Store("tasks.stats", err)
	}
	return s, nil
}
