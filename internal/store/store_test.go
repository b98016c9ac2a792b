package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/blindtype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertSessions(t *testing.T, st *Store, n int) []int64 {
	t.Helper()
	ctx := context.Background()
	var ids []int64
	for i := 0; i < n; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		rec := model.SessionRecord{
			StartedAt:  start,
			EndedAt:    start.Add(30 * time.Second),
			Sample:     "ab",
			WPM:        float64(10 + i),
			Accuracy:   66.7,
			Keystrokes: 3,
			DurationMs: 30000,
		}
		letters := map[rune]model.LetterStat{
			'a': {MainLetter: 'a', Presses: map[rune]int{'a': 1}, TotalPresses: 1},
			'b': {MainLetter: 'b', Presses: map[rune]int{'b': 1, 'x': 1}, TotalPresses: 2},
		}
		id, err := st.InsertSession(ctx, rec, letters)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ids := insertSessions(t, st, 3)

	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != ids[1] || sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", sessions)
	}
	if sessions[1].WPM != 12 || sessions[1].UUID == "" {
		t.Fatalf("unexpected session row: %+v", sessions[1])
	}
}

func TestListSessionsSince(t *testing.T) {
	st := openTestStore(t)
	insertSessions(t, st, 3)
	since := time.Unix(0, 0).UTC().Add(100 * time.Second)
	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
}

func TestLetterAggregates(t *testing.T) {
	st := openTestStore(t)
	ids := insertSessions(t, st, 2)

	aggs, err := st.ListLetterAggregates(context.Background(), ids)
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	byLetter := map[string]model.LetterAggregate{}
	for _, a := range aggs {
		byLetter[a.Letter] = a
	}
	if b := byLetter["b"]; b.Correct != 2 || b.Presses != 4 || b.Accuracy() != 50 {
		t.Fatalf("unexpected b aggregate: %+v", b)
	}
	if a := byLetter["a"]; a.Correct != 2 || a.Presses != 2 {
		t.Fatalf("unexpected a aggregate: %+v", a)
	}

	weak, err := st.GetWeakLetters(context.Background(), 1)
	if err != nil {
		t.Fatalf("weak letters: %v", err)
	}
	if len(weak) != 2 {
		t.Fatalf("expected 2 letters, got %d", len(weak))
	}
}

func TestClear(t *testing.T) {
	st := openTestStore(t)
	insertSessions(t, st, 2)
	if err := st.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

func TestInsertSessionRollsBackOnConflict(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	start := time.Unix(0, 0).UTC()
	rec := model.SessionRecord{UUID: "same", StartedAt: start, EndedAt: start.Add(time.Second), Sample: "a", DurationMs: 1000}
	letters := map[rune]model.LetterStat{'a': {MainLetter: 'a', Presses: map[rune]int{'a': 1}, TotalPresses: 1}}

	id, err := st.InsertSession(ctx, rec, letters)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := st.InsertSession(ctx, rec, letters); err == nil {
		t.Fatalf("expected duplicate uuid to fail")
	}

	sessions, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != id {
		t.Fatalf("unexpected sessions after failed insert: %+v", sessions)
	}
	aggs, err := st.GetWeakLetters(ctx, 10)
	if err != nil {
		t.Fatalf("weak letters: %v", err)
	}
	if len(aggs) != 1 || aggs[0].Presses != 1 {
		t.Fatalf("unexpected letter rows: %+v", aggs)
	}
	// The store stays usable after the rollback.
	if _, err := st.InsertSession(ctx, model.SessionRecord{StartedAt: start, EndedAt: start}, nil); err != nil {
		t.Fatalf("insert after rollback: %v", err)
	}
}
