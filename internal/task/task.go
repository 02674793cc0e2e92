// Package task provides the in-memory task store shared by the chat
// pipeline and the action dispatcher. Records are kept in insertion
// order; lookups by title use first-match substring semantics.
package task

// Priority is the coarse importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Record is a single task. IDs are unique within a store and derived
// from the creation time (Unix milliseconds, bumped on collision).
type Record struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Priority      Priority `json:"priority"`
	EstimatedTime int      `json:"estimatedTime"` // minutes
	Category      string   `json:"category"`
	Completed     bool     `json:"completed"`
	Quadrant      int      `json:"quadrant"` // Eisenhower quadrant 1-4
}

// Patch describes a partial update to a Record. Nil fields are left
// untouched.
type Patch struct {
	Title         *string
	Priority      *Priority
	EstimatedTime *int
	Category      *string
	Completed     *bool
	Quadrant      *int
}

// Predicate selects records for Filter.
type Predicate func(Record) bool

// Stats is a read-only summary of the store used for prompt building
// and the fallback responder.
type Stats struct {
	Total          int
	Completed      int
	TopPriorities  []string // titles of incomplete high-priority tasks, store order, max 3
	QuadrantCounts [5]int   // index 1-4; index 0 unused
	TotalMinutes   int      // sum of estimated time across incomplete tasks
}

// CompletionRatio returns completed/total in [0,1], or 0 for an empty
// store.
func (s Stats) CompletionRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

func clampQuadrant(q int) int {
	if q < 1 || q > 4 {
		return 2
	}
	return q
}
