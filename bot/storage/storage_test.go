package storage

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// testDB connects to the database named by TEST_DATABASE_URL. The
// schema must already be migrated. Without the variable the tests
// skip, so the unit suite stays runnable offline.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsersGetOrCreateIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewUsers(db)

	tgID := time.Now().UnixNano()
	username := "tester"

	first, err := users.GetOrCreate(ctx, tgID, Profile{FirstName: "Ada", Username: &username})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := users.GetOrCreate(ctx, tgID, Profile{FirstName: "Ada Lovelace"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert created a second row: %d vs %d", first.ID, second.ID)
	}
	if second.FirstName != "Ada Lovelace" || second.Username != nil {
		t.Fatalf("profile not refreshed: %+v", second)
	}
}

func TestTasksCompleteOnce(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewUsers(db)
	tasks := NewTasks(db)

	u, err := users.GetOrCreate(ctx, time.Now().UnixNano(), Profile{FirstName: "Ada"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	task, err := tasks.Create(ctx, u.ID, "Buy milk", "groceries")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := tasks.Complete(ctx, u.ID, task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := tasks.Complete(ctx, u.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second completion: want ErrTaskNotFound, got %v", err)
	}

	active, err := tasks.Active(ctx, u.ID)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("completed task still listed as active: %+v", active)
	}
	done, err := tasks.Completed(ctx, u.ID)
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(done) != 1 || done[0].DoneAt == nil {
		t.Fatalf("completed list: %+v", done)
	}

	stats, err := tasks.Stats(ctx, u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 || stats.Done != 1 || stats.Active != 0 {
		t.Fatalf("stats: %+v", stats)
	}
}

func TestHabitsAddAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewUsers(db)
	habits := NewHabits(db)

	u, err := users.GetOrCreate(ctx, time.Now().UnixNano(), Profile{FirstName: "Ada"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := habits.Add(ctx, u.ID, "Running", "5k before breakfast"); err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := habits.List(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Running" {
		t.Fatalf("list: %+v", list)
	}
}
