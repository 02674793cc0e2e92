package task

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned by Update when no record has the given ID.
var ErrNotFound = errors.New("task not found")

// ErrEmptyTitle is returned when appending a record without a title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Store is a mutex-serialized ordered collection of task records.
// Concurrent pipeline runs may mutate it; a single writer holds the
// lock at a time, so no update is lost to interleaving.
type Store struct {
	mu     sync.RWMutex
	tasks  []Record
	lastID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreWith returns a store seeded with the given records. IDs are
// assigned for records that have none.
func NewStoreWith(records []Record) *Store {
	s := &Store{}
	for _, r := range records {
		if r.ID == 0 {
			r.ID = s.nextID()
		} else if r.ID > s.lastID {
			s.lastID = r.ID
		}
		r.Quadrant = clampQuadrant(r.Quadrant)
		s.tasks = append(s.tasks, r)
	}
	return s
}

// nextID derives an ID from the current time, bumping past the last
// issued ID so two tasks created in the same millisecond stay unique.
// Caller must hold mu (or own the store exclusively).
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Append adds a record to the end of the store, assigns it a fresh ID
// and returns the stored copy.
func (s *Store) Append(r Record) (Record, error) {
	if strings.TrimSpace(r.Title) == "" {
		return Record{}, ErrEmptyTitle
	}
	if !ValidPriority(r.Priority) {
		r.Priority = PriorityMedium
	}
	if r.EstimatedTime <= 0 {
		r.EstimatedTime = 30
	}
	r.Quadrant = clampQuadrant(r.Quadrant)

	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID()
	s.tasks = append(s.tasks, r)
	return r, nil
}

// FindByTitle returns the first record whose title contains name as a
// case-insensitive substring, in store order. Ties go to the earliest
// record.
func (s *Store) FindByTitle(name string) (Record, bool) {
	needle := strings.ToLower(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return t, true
		}
	}
	return Record{}, false
}

// Filter returns a snapshot of all records matching pred, in store
// order. A nil predicate matches everything.
func (s *Store) Filter(pred Predicate) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.tasks))
	for _, t := range s.tasks {
		if pred == nil || pred(t) {
			out = append(out, t)
		}
	}
	return out
}

// Snapshot returns a copy of every record in store order.
func (s *Store) Snapshot() []Record {
	return s.Filter(nil)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Update applies the non-nil fields of patch to the record with the
// given ID. Unspecified fields are left untouched.
func (s *Store) Update(id int64, patch Patch) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if patch.Title != nil && strings.TrimSpace(*patch.Title) != "" {
			t.Title = *patch.Title
		}
		if patch.Priority != nil && ValidPriority(*patch.Priority) {
			t.Priority = *patch.Priority
		}
		if patch.EstimatedTime != nil && *patch.EstimatedTime > 0 {
			t.EstimatedTime = *patch.EstimatedTime
		}
		if patch.Category != nil && *patch.Category != "" {
			t.Category = *patch.Category
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.Quadrant != nil {
			t.Quadrant = clampQuadrant(*patch.Quadrant)
		}
		return *t, nil
	}
	return Record{}, ErrNotFound
}

// Stats computes the summary counters in one pass under the read lock.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	st.Total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.TotalMinutes += t.EstimatedTime
			if t.Priority == PriorityHigh && len(st.TopPriorities) < 3 {
				st.TopPriorities = append(st.TopPriorities, t.Title)
			}
		}
		if t.Quadrant >= 1 && t.Quadrant <= 4 {
			st.QuadrantCounts[t.Quadrant]++
		}
	}
	return st
}
