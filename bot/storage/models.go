// Package storage holds the Postgres repositories for users, tasks
// and habits.
package storage

import "time"

// User is one Telegram account known to the bot.
type User struct {
	ID           int64     `db:"id"`
	TelegramID   int64     `db:"telegram_id"`
	FirstName    string    `db:"first_name"`
	LastName     *string   `db:"last_name"`
	Username     *string   `db:"username"`
	CreatedAt    time.Time `db:"created_at"`
	LastActivity time.Time `db:"last_activity"`
}

// Task is one to-do item. Category comes from the part of the input
// after the first comma.
type Task struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	Text      string     `db:"text"`
	Category  string     `db:"category"`
	IsDone    bool       `db:"is_done"`
	CreatedAt time.Time  `db:"created_at"`
	DoneAt    *time.Time `db:"done_at"`
}

// Habit is one habit a user decided to track.
type Habit struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
}

// TaskStats summarizes one user's to-do list for /stats.
type TaskStats struct {
	Total  int `db:"total"`
	Done   int `db:"done"`
	Active int `db:"active"`
}
