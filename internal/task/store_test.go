package task

import (
	"fmt"
	"sync"
	"testing"
)

func TestAppendAssignsUniqueIDs(t *testing.T) {
	s := NewStore()
	seen := make(map[int64]bool)
	for i := 0; i < 100; i++ {
		r, err := s.Append(Record{Title: fmt.Sprintf("task %d", i)})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate ID %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestAppendDefaults(t *testing.T) {
	s := NewStore()
	r, err := s.Append(Record{Title: "bare"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if r.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want medium", r.Priority)
	}
	if r.EstimatedTime != 30 {
		t.Errorf("EstimatedTime = %d, want 30", r.EstimatedTime)
	}
	if r.Quadrant != 2 {
		t.Errorf("Quadrant = %d, want 2", r.Quadrant)
	}
	if r.Completed {
		t.Error("new task should not be completed")
	}
}

func TestAppendRejectsEmptyTitle(t *testing.T) {
	s := NewStore()
	if _, err := s.Append(Record{Title: "   "}); err != ErrEmptyTitle {
		t.Errorf("err = %v, want ErrEmptyTitle", err)
	}
}

func TestFindByTitleFirstMatch(t *testing.T) {
	s := NewStoreWith([]Record{
		{Title: "Finalize report"},
		{Title: "Annual report review"},
	})
	r, ok := s.FindByTitle("REPORT")
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Title != "Finalize report" {
		t.Errorf("matched %q, want first record in store order", r.Title)
	}

	if _, ok := s.FindByTitle("nonexistent"); ok {
		t.Error("expected no match")
	}
}

func TestFilterPreservesStoreOrder(t *testing.T) {
	s := NewStoreWith([]Record{
		{Title: "a", Priority: PriorityHigh},
		{Title: "b", Priority: PriorityLow},
		{Title: "c", Priority: PriorityHigh},
	})
	got := s.Filter(func(r Record) bool { return r.Priority == PriorityHigh })
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "c" {
		t.Errorf("Filter returned %v, want [a c]", got)
	}
}

func TestUpdatePartial(t *testing.T) {
	s := NewStoreWith([]Record{{Title: "draft", Priority: PriorityLow, EstimatedTime: 20, Category: "writing", Quadrant: 3}})
	id := s.Snapshot()[0].ID

	p := PriorityHigh
	est := 45
	r, err := s.Update(id, Patch{Priority: &p, EstimatedTime: &est})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if r.Priority != PriorityHigh || r.EstimatedTime != 45 {
		t.Errorf("patched fields not applied: %+v", r)
	}
	if r.Title != "draft" || r.Category != "writing" || r.Quadrant != 3 {
		t.Errorf("unpatched fields changed: %+v", r)
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := NewStore()
	if _, err := s.Update(42, Patch{}); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateClampsQuadrant(t *testing.T) {
	s := NewStoreWith([]Record{{Title: "x", Quadrant: 1}})
	id := s.Snapshot()[0].ID
	q := 9
	r, err := s.Update(id, Patch{Quadrant: &q})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if r.Quadrant < 1 || r.Quadrant > 4 {
		t.Errorf("Quadrant = %d, want 1-4", r.Quadrant)
	}
}

func TestStats(t *testing.T) {
	s := NewStoreWith([]Record{
		{Title: "p1", Priority: PriorityHigh, EstimatedTime: 60, Quadrant: 1},
		{Title: "p2", Priority: PriorityHigh, EstimatedTime: 30, Quadrant: 2, Completed: true},
		{Title: "p3", Priority: PriorityLow, EstimatedTime: 15, Quadrant: 4},
	})
	st := s.Stats()
	if st.Total != 3 || st.Completed != 1 {
		t.Errorf("Total/Completed = %d/%d, want 3/1", st.Total, st.Completed)
	}
	if len(st.TopPriorities) != 1 || st.TopPriorities[0] != "p1" {
		t.Errorf("TopPriorities = %v, want [p1]", st.TopPriorities)
	}
	if st.QuadrantCounts[1] != 1 || st.QuadrantCounts[2] != 1 || st.QuadrantCounts[4] != 1 {
		t.Errorf("QuadrantCounts = %v", st.QuadrantCounts)
	}
	if st.TotalMinutes != 75 {
		t.Errorf("TotalMinutes = %d, want 75", st.TotalMinutes)
	}
}

func TestConcurrentMutation(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := s.Append(Record{Title: fmt.Sprintf("task %d", n)}); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Len = %d, want 20", s.Len())
	}
	ids := make(map[int64]bool)
	for _, r := range s.Snapshot() {
		if ids[r.ID] {
			t.Fatalf("duplicate ID %d under concurrency", r.ID)
		}
		ids[r.ID] = true
	}
}
