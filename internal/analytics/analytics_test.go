// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/scribe-engine/internal/store"
	"github.com/pdiddy/scribe-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func record(t *testing.T, s *Store, ct types.ContentType, method types.ClassificationMethod, at time.Time) {
	t.Helper()
	err := s.Record(context.Background(), types.ClassificationRecord{
		Type: ct, Method: method, Confidence: 0.8, RecordedAt: at,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := testStore(t)
	summary, err := s.Summarize(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 0 || len(summary.Breakdown) != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
}

func TestSummarizeGroupsByTypeAndMethod(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record(t, s, types.TypeTodo, types.MethodExplicit, now)
	record(t, s, types.TypeTodo, types.MethodExplicit, now)
	record(t, s, types.TypeTodo, types.MethodHeuristic, now)
	record(t, s, types.TypeExpense, types.MethodLLM, now)

	summary, err := s.Summarize(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if len(summary.Breakdown) != 3 {
		t.Fatalf("got %d rows, want 3: %v", len(summary.Breakdown), summary.Breakdown)
	}

	find := func(ct types.ContentType, m types.ClassificationMethod) *MethodCount {
		for i := range summary.Breakdown {
			if summary.Breakdown[i].Type == ct && summary.Breakdown[i].Method == m {
				return &summary.Breakdown[i]
			}
		}
		return nil
	}

	explicit := find(types.TypeTodo, types.MethodExplicit)
	if explicit == nil || explicit.Count != 2 {
		t.Errorf("todo/explicit = %+v, want count 2", explicit)
	}
	if explicit != nil && explicit.Share != 0.5 {
		t.Errorf("todo/explicit Share = %.2f, want 0.50", explicit.Share)
	}
	if row := find(types.TypeExpense, types.MethodLLM); row == nil || row.Count != 1 {
		t.Errorf("expense/llm = %+v, want count 1", row)
	}
}

func TestSummarizeSinceWindow(t *testing.T) {
	s := testStore(t)
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record(t, s, types.TypeTodo, types.MethodExplicit, old)
	record(t, s, types.TypeTodo, types.MethodExplicit, recent)

	summary, err := s.Summarize(context.Background(), QueryOptions{
		Since: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 1 {
		t.Errorf("Total = %d, want 1 (old record filtered)", summary.Total)
	}
}

func TestSummarizeTypeFilter(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record(t, s, types.TypeTodo, types.MethodExplicit, now)
	record(t, s, types.TypeExpense, types.MethodHeuristic, now)

	summary, err := s.Summarize(context.Background(), QueryOptions{Type: types.TypeExpense})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 1 {
		t.Fatalf("Total = %d, want 1", summary.Total)
	}
	if summary.Breakdown[0].Type != types.TypeExpense {
		t.Errorf("Type = %s, want expense", summary.Breakdown[0].Type)
	}
	// Shares are computed within the filtered window.
	if summary.Breakdown[0].Share != 1.0 {
		t.Errorf("Share = %.2f, want 1.00", summary.Breakdown[0].Share)
	}
}

func TestSummarizeOrderingStable(t *testing.T) {
	s := testStore(t)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	record(t, s, types.TypeTodo, types.MethodHeuristic, now)
	record(t, s, types.TypeEmail, types.MethodExplicit, now)
	record(t, s, types.TypeExpense, types.MethodLLM, now)

	first, err := s.Summarize(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := s.Summarize(context.Background(), QueryOptions{})
		if err != nil {
			t.Fatal(err)
		}
		for j := range first.Breakdown {
			if first.Breakdown[j] != again.Breakdown[j] {
				t.Fatalf("run %d row %d differs", i, j)
			}
		}
	}
}
