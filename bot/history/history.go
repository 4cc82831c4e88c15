// Package history appends an audit trail of external lookups to a
// plain text file.
package history

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"assistbot/core/logger"
)

const separator = "----------------------------------------"

// Log appends lookup records to a single file. Writes are serialized
// so concurrent handlers cannot interleave blocks.
type Log struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New constructs a Log writing to path. The file is created on first
// append.
func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Entry is one lookup to record.
type Entry struct {
	UserName string
	Kind     string
	Query    string
	Result   string
}

// Append writes one block to the audit file. A failed append is
// reported to the caller but must never fail the user's request.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", l.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "User: %s\n", e.UserName)
	fmt.Fprintf(&b, "Kind: %s\n", e.Kind)
	fmt.Fprintf(&b, "Query: %s\n", e.Query)
	fmt.Fprintf(&b, "Result: %s\n", e.Result)
	b.WriteString(separator + "\n")

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SVCHistory.Error("open failed",
			slog.String("event", "history.append"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(b.String()); err != nil {
		logger.SVCHistory.Error("write failed",
			slog.String("event", "history.append"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("append history block: %w", err)
	}
	return nil
}
