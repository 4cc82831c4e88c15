package history

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestAppendWritesBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	l := New(path)
	l.now = func() time.Time {
		return time.Date(2026, time.May, 15, 10, 30, 0, 0, time.UTC)
	}

	err := l.Append(Entry{
		UserName: "Ada",
		Kind:     "weather",
		Query:    "Paris",
		Result:   "18.4C, light rain",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	want := "Date: 2026-05-15 10:30:00\n" +
		"User: Ada\n" +
		"Kind: weather\n" +
		"Query: Paris\n" +
		"Result: 18.4C, light rain\n" +
		strings.Repeat("-", 40) + "\n"
	if got != want {
		t.Fatalf("block mismatch:\n%q\nwant:\n%q", got, want)
	}
}

func TestAppendDoesNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	l := New(path)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(Entry{UserName: "Ada", Kind: "weather", Query: "Paris", Result: "ok"})
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	blocks := strings.Count(string(data), strings.Repeat("-", 40)+"\n")
	if blocks != 16 {
		t.Fatalf("expected 16 complete blocks, got %d", blocks)
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == strings.Repeat("-", 40) {
			continue
		}
		if !strings.Contains(line, ": ") {
			t.Fatalf("garbled line: %q", line)
		}
	}
}
