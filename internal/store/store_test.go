package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func testKVRepo(t *testing.T, repo KVRepo) {
	t.Helper()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
	}

	if err := repo.Put(ctx, "file_b.csv", "one"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "file_b.csv", "two"); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err := repo.Get(ctx, "file_b.csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "two" {
		t.Errorf("Get = %q, want %q", got, "two")
	}

	if err := repo.Put(ctx, "file_a.csv", "a"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, "quizConfig", "{}"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	keys, err := repo.Keys(ctx, "file_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "file_a.csv" || keys[1] != "file_b.csv" {
		t.Errorf("Keys = %v, want [file_a.csv file_b.csv]", keys)
	}

	all, err := repo.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(Keys all) = %d, want 3", len(all))
	}

	if err := repo.Delete(ctx, "file_a.csv"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "file_a.csv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete twice: err = %v, want ErrNotFound", err)
	}
}

func TestKVRepo(t *testing.T) {
	testKVRepo(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	testKVRepo(t, NewMemoryKV())
}

func TestKVRepo_PrefixIsLiteral(t *testing.T) {
	repo := openTestStore(t).KV()
	ctx := context.Background()

	for _, k := range []string{"file_x", "fileAx", "file%y"} {
		if err := repo.Put(ctx, k, "v"); err != nil {
			t.Fatalf("Put %q: %v", k, err)
		}
	}
	keys, err := repo.Keys(ctx, "file_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "file_x" {
		t.Errorf("Keys(file_) = %v, want [file_x]", keys)
	}
}

func TestSessionEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "s1", Action: ActionStart, QuestionFile: "Janko.csv", Total: 2},
		{SessionID: "s1", Action: ActionAnswer, QuestionIndex: 0, Chosen: "B", Correct: true, Score: 1, Total: 2},
		{SessionID: "s2", Action: ActionStart, QuestionFile: "Pytania2.csv", Total: 1},
		{SessionID: "s1", Action: ActionAnswer, QuestionIndex: 1, Chosen: "A", Score: 1, Total: 2},
		{SessionID: "s1", Action: ActionFinish, QuestionFile: "Janko.csv", Score: 1, Total: 2},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("AppendSessionEvent: %v", err)
		}
	}

	all, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QuerySessionEvents: %v", err)
	}
	if len(all) != len(events) {
		t.Fatalf("len = %d, want %d", len(all), len(events))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Errorf("sequence not increasing at %d: %d <= %d", i, all[i].Sequence, all[i-1].Sequence)
		}
	}
	if !all[1].Correct || all[1].Chosen != "B" {
		t.Errorf("answer event = %+v, want correct B", all[1].SessionEventData)
	}
	if all[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	s1, err := repo.QuerySessionEvents(ctx, QueryOpts{SessionID: "s1", Action: ActionAnswer})
	if err != nil {
		t.Fatalf("QuerySessionEvents filtered: %v", err)
	}
	if len(s1) != 2 {
		t.Errorf("s1 answers = %d, want 2", len(s1))
	}

	page, err := repo.QuerySessionEvents(ctx, QueryOpts{After: all[1].Sequence, Limit: 2})
	if err != nil {
		t.Fatalf("QuerySessionEvents paged: %v", err)
	}
	if len(page) != 2 || page[0].Sequence != all[2].Sequence {
		t.Errorf("page = %+v, want events 3 and 4", page)
	}

	future, err := repo.QuerySessionEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("QuerySessionEvents future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future events = %d, want 0", len(future))
	}
}

func TestRecentFinished(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		err := repo.AppendSessionEvent(ctx, SessionEventData{
			SessionID: id, Action: ActionFinish, Score: i, Total: 3,
		})
		if err != nil {
			t.Fatalf("AppendSessionEvent: %v", err)
		}
	}

	got, err := repo.RecentFinished(ctx, 2)
	if err != nil {
		t.Fatalf("RecentFinished: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].SessionID != "c" || got[1].SessionID != "b" {
		t.Errorf("order = %s,%s, want c,b", got[0].SessionID, got[1].SessionID)
	}
}
